/*
Package ddb implements the RecordStore repository interface on AWS
DynamoDB.

Layout: single table, single-object key pattern. PK and SK both carry
"<set>#<user-key>". The optimistic-lock version travels in the
_version attribute; finite expirations are written as an absolute
epoch in _expires_at (suitable for a DynamoDB TTL attribute) and read
back as the remaining second count.

Conditional-write mapping:

	record.ExpectNone()      → plain PutItem
	record.ExpectCreate()    → attribute_not_exists(PK)
	record.ExpectVersion(n)  → #v = :expected on _version

A ConditionalCheckFailedException becomes errors.ErrVersionConflict;
all other SDK failures pass through wrapped with %w.

Setup:

	client, err := ddb.NewClient(accessKey, secretKey, region)
	store := ddb.NewRecordStore(client, tableName)

Integration tests for this package require AWS credentials and a table
name in the environment and skip otherwise.
*/
package ddb
