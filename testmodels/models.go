/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels provides the example entities used across the
// recordconv test suites, together with their descriptors and
// converter entries.
package testmodels

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/recordconv/codec"
	"github.com/suparena/recordconv/errors"
	"github.com/suparena/recordconv/record"
	"github.com/suparena/recordconv/registry"
)

// VersionedDocument participates in optimistic locking. A nil Version
// means the document has never been written.
type VersionedDocument struct {
	Key              string
	AvailableOptions []int64
	CreatedAt        *strfmt.DateTime
	Version          *int64
}

// VersionedDocumentDescriptor maps AvailableOptions to the avlOpts
// attribute and declares Version as the optimistic-lock field.
func VersionedDocumentDescriptor() *codec.Descriptor[VersionedDocument] {
	return &codec.Descriptor[VersionedDocument]{
		Name: "VersionedDocument",
		Key: codec.Identifier(codec.StringKey(),
			func(d *VersionedDocument) string { return d.Key },
			func(d *VersionedDocument, k string) { d.Key = k }),
		Version: &codec.VersionSpec[VersionedDocument]{
			Get: func(d *VersionedDocument) *int64 { return d.Version },
			Set: func(d *VersionedDocument, v *int64) { d.Version = v },
		},
		Fields: []codec.Field[VersionedDocument]{
			codec.Attr("avlOpts",
				func(d *VersionedDocument) []int64 { return d.AvailableOptions },
				func(d *VersionedDocument, v []int64) { d.AvailableOptions = v }),
			codec.Attr("createdAt",
				func(d *VersionedDocument) *strfmt.DateTime { return d.CreatedAt },
				func(d *VersionedDocument, v *strfmt.DateTime) { d.CreatedAt = v }),
		},
	}
}

// CommentKey is the composite identifier of a Comment.
type CommentKey struct {
	PageID   int64
	ThreadID int64
}

// Comment is keyed by (page, thread) and encodes its identifier as
// "comments::<pageId>::<threadId>".
type Comment struct {
	Key    CommentKey
	Author string
	Body   string
}

// CommentKeyCodec builds the composite key codec for CommentKey.
func CommentKeyCodec() codec.KeyCodec {
	return codec.CompositeKey[CommentKey]("comments",
		codec.IntKeyField("pageId",
			func(k *CommentKey) int64 { return k.PageID },
			func(k *CommentKey, v int64) { k.PageID = v }),
		codec.IntKeyField("threadId",
			func(k *CommentKey) int64 { return k.ThreadID },
			func(k *CommentKey, v int64) { k.ThreadID = v }),
	)
}

// CommentDescriptor declares body required and author optional.
func CommentDescriptor() *codec.Descriptor[Comment] {
	return &codec.Descriptor[Comment]{
		Name: "Comment",
		Key: codec.Identifier(CommentKeyCodec(),
			func(c *Comment) CommentKey { return c.Key },
			func(c *Comment, k CommentKey) { c.Key = k }),
		Fields: []codec.Field[Comment]{
			codec.Attr("author",
				func(c *Comment) string { return c.Author },
				func(c *Comment, v string) { c.Author = v }),
			codec.Attr("body",
				func(c *Comment) string { return c.Body },
				func(c *Comment, v string) { c.Body = v }).AsRequired(),
		},
	}
}

// User demonstrates the boolean 0/1 mapping and a declared fallback:
// a record without a country attribute decodes to "N/A".
type User struct {
	ID      string
	Name    string
	Country string
	Active  bool
}

// UserDescriptor declares the country fallback and the active flag.
func UserDescriptor() *codec.Descriptor[User] {
	return &codec.Descriptor[User]{
		Name: "User",
		Key: codec.Identifier(codec.StringKey(),
			func(u *User) string { return u.ID },
			func(u *User, k string) { u.ID = k }),
		Fields: []codec.Field[User]{
			codec.Attr("name",
				func(u *User) string { return u.Name },
				func(u *User, v string) { u.Name = v }).AsRequired(),
			codec.Attr("country",
				func(u *User) string { return u.Country },
				func(u *User, v string) { u.Country = v }).WithFallback("N/A"),
			codec.Attr("active",
				func(u *User) bool { return u.Active },
				func(u *User, v bool) { u.Active = v }),
		},
	}
}

// DraftTTL is the expiration applied to articles still in draft state.
const DraftTTL record.Expiration = 10

// Article demonstrates a per-entity expiration policy: drafts expire
// after DraftTTL seconds, published articles never expire.
type Article struct {
	ID    string
	Title string
	Draft bool
}

// ArticleDescriptor declares the draft-aware expiration policy.
func ArticleDescriptor() *codec.Descriptor[Article] {
	return &codec.Descriptor[Article]{
		Name: "Article",
		Key: codec.Identifier(codec.StringKey(),
			func(a *Article) string { return a.ID },
			func(a *Article, k string) { a.ID = k }),
		Fields: []codec.Field[Article]{
			codec.Attr("title",
				func(a *Article) string { return a.Title },
				func(a *Article, v string) { a.Title = v }).AsRequired(),
			codec.Attr("draft",
				func(a *Article) bool { return a.Draft },
				func(a *Article, v bool) { a.Draft = v }),
		},
		Expiration: func(a *Article) record.Expiration {
			if a.Draft {
				return DraftTTL
			}
			return record.NeverExpire
		},
	}
}

// DateTimeConverters returns the field-level converter pair carrying
// strfmt.DateTime values as RFC 3339 strings.
func DateTimeConverters() []registry.Entry {
	return []registry.Entry{
		registry.FieldWrite(func(v strfmt.DateTime) (any, error) {
			return time.Time(v).Format(time.RFC3339Nano), nil
		}),
		registry.FieldRead(func(v any) (strfmt.DateTime, error) {
			s, ok := v.(string)
			if !ok {
				return strfmt.DateTime{}, errors.NewFieldTypeMismatchError("createdAt", "string", fmt.Sprintf("%T", v))
			}
			ts, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return strfmt.DateTime{}, errors.NewFieldTypeMismatchError("createdAt", "RFC 3339 timestamp", s)
			}
			return strfmt.DateTime(ts), nil
		}),
	}
}
