package mapper

import "github.com/uptrace/bun"

// Row is the flat persisted form of a cache entry: one row per key (or per
// (key, version) when history is retained). It doubles as the bun model the
// store executes against; the table name declared here is the default, the
// store substitutes Config.Table at query time.
//
// All timestamps persist as integer seconds since epoch, UTC. Sub-second
// precision is not preserved by this layer.
//
// Nullable string columns distinguish "absent" from "empty": a NULL tags or
// metadata column means the row predates the column (legacy row), while an
// empty string is the canonical encoding of an empty set.
type Row struct {
	bun.BaseModel `bun:"table:cache_entries,alias:ce"`

	Key                string  `bun:"key,pk"`
	TypeTag            string  `bun:"type_tag,notnull"`
	Value              []byte  `bun:"value,notnull"`
	Size               int64   `bun:"size,notnull,default:0"`
	AbsoluteExpiration *int64  `bun:"absolute_expiration"`
	Tags               *string `bun:"tags"`
	Metadata           *string `bun:"metadata"`
	Priority           int     `bun:"priority,notnull,default:0"`
	AccessCount        int64   `bun:"access_count,notnull,default:0"`
	LastAccessTime     *int64  `bun:"last_access_time"`
	CreatedTime        int64   `bun:"created_time,notnull"`
	LastWriteTime      int64   `bun:"last_write_time,notnull"`
	Version            int64   `bun:"version,notnull,default:1"`
	IsDeleted          bool    `bun:"is_deleted,notnull,default:false"`
}
