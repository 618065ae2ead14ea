/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/recordconv/errors"
	"github.com/suparena/recordconv/record"
)

// Reserved attribute names. Entity attributes must not collide with
// these; recordToItem rejects records that do.
const (
	attrPK        = "PK"
	attrSK        = "SK"
	attrVersion   = "_version"
	attrExpiresAt = "_expires_at"
)

// RecordStore implements datastore.RecordStore on a DynamoDB table
// using the single-table PK/SK layout. The record's version travels in
// the _version attribute and the conditional-write expectations map to
// DynamoDB condition expressions.
type RecordStore struct {
	client    *sdk.Client
	tableName string
	now       func() time.Time
}

// NewClient initializes a DynamoDB client using static AWS credentials.
func NewClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// NewRecordStore constructs a RecordStore over the given table.
func NewRecordStore(client *sdk.Client, tableName string) *RecordStore {
	return &RecordStore{
		client:    client,
		tableName: tableName,
		now:       time.Now,
	}
}

func itemKey(key record.Key) map[string]types.AttributeValue {
	pk := key.Set + "#" + key.UserKey
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: pk},
		attrSK: &types.AttributeValueMemberS{Value: pk},
	}
}

// ReadRecord fetches the item under key and rebuilds the record.
func (d *RecordStore) ReadRecord(ctx context.Context, key record.Key) (*record.Record, error) {
	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(d.tableName),
		Key:       itemKey(key),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError("record", key.String())
	}
	return d.itemToRecord(key, out.Item)
}

// WriteRecord stores the record subject to the expectation. A failed
// condition surfaces as a version conflict; every other failure passes
// through unmodified.
func (d *RecordStore) WriteRecord(ctx context.Context, rec *record.Record, expect record.Expect) (int64, error) {
	item, err := recordToItem(rec)
	if err != nil {
		return 0, err
	}

	input := &sdk.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	}

	var confirmed int64
	switch {
	case !expect.Conditional():
		confirmed = 0
	case expect.Version() == nil:
		confirmed = 1
		input.ConditionExpression = aws.String(fmt.Sprintf("attribute_not_exists(%s)", attrPK))
	default:
		confirmed = *expect.Version() + 1
		input.ConditionExpression = aws.String("#v = :expected")
		input.ExpressionAttributeNames = map[string]string{"#v": attrVersion}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *expect.Version())},
		}
	}

	if expect.Conditional() {
		item[attrVersion] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", confirmed)}
	}

	if d.finiteExpiration(rec) {
		expiresAt := d.now().Unix() + int64(rec.Expiration)
		item[attrExpiresAt] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expiresAt)}
	}

	if _, err := d.client.PutItem(ctx, input); err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return 0, errors.NewVersionConflictError(rec.Key.String(), expect.Version())
		}
		return 0, fmt.Errorf("PutItem failed: %w", err)
	}
	return confirmed, nil
}

// DeleteRecord removes the item under key.
func (d *RecordStore) DeleteRecord(ctx context.Context, key record.Key) error {
	_, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:           aws.String(d.tableName),
		Key:                 itemKey(key),
		ConditionExpression: aws.String(fmt.Sprintf("attribute_exists(%s)", attrPK)),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return errors.NewNotFoundError("record", key.String())
		}
		return fmt.Errorf("DeleteItem failed: %w", err)
	}
	return nil
}

func (d *RecordStore) finiteExpiration(rec *record.Record) bool {
	return rec.Expiration.IsFinite()
}

func (d *RecordStore) itemToRecord(key record.Key, item map[string]types.AttributeValue) (*record.Record, error) {
	rec := record.NewRecord(key)

	for name, av := range item {
		switch name {
		case attrPK, attrSK:
			continue
		case attrVersion:
			n, err := parseNumber(av)
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %w", attrVersion, err)
			}
			v, ok := n.(int64)
			if !ok {
				return nil, fmt.Errorf("attribute %s is not an integer", attrVersion)
			}
			rec.Version = record.VersionOf(v)
		case attrExpiresAt:
			n, err := parseNumber(av)
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %w", attrExpiresAt, err)
			}
			expiresAt, ok := n.(int64)
			if !ok {
				return nil, fmt.Errorf("attribute %s is not an integer", attrExpiresAt)
			}
			remaining := expiresAt - d.now().Unix()
			if remaining < 0 {
				remaining = 0
			}
			rec.Expiration = record.Expiration(remaining)
		default:
			v, err := attributeToValue(av)
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %w", name, err)
			}
			rec.Attributes[name] = v
		}
	}
	return rec, nil
}
