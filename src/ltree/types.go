package ltree

import (
	"context"
	"errors"

	"git.handmade.network/hmn/ltree/src/config"
	"git.handmade.network/hmn/ltree/src/db"
	"git.handmade.network/hmn/ltree/src/logging"
	"git.handmade.network/hmn/ltree/src/oops"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	TypeName      = "ltree"
	ArrayTypeName = "_ltree"
)

/*
The oids ltree had in the database this package was first written against.
They are assigned when the extension is installed, so they are almost
certainly different in yours. Register looks up the real values.
*/
const (
	DefaultOID      uint32 = 24754
	DefaultArrayOID uint32 = 24757
)

var ErrNotInstalled = errors.New("the ltree extension is not installed")

// The ltree SQL type. Carries no data; it exists to type expressions.
type Ltree struct{}

func (Ltree) TypeName() string { return TypeName }

// The fixed wire identifiers for ltree. See Register for the real ones.
func (Ltree) Metadata() TypeMetadata {
	return TypeMetadata{
		OID:      DefaultOID,
		ArrayOID: DefaultArrayOID,
	}
}

type TypeMetadata struct {
	OID      uint32
	ArrayOID uint32
}

type MetadataSource string

const (
	SourceCatalog  MetadataSource = "catalog"
	SourceOverride MetadataSource = "override"
	SourceDefault  MetadataSource = "default"
)

// Reads ltree's oids from pg_type.
func LookupMetadata(ctx context.Context, conn db.ConnOrTx) (TypeMetadata, error) {
	var md TypeMetadata
	err := conn.QueryRow(ctx,
		`
		---- Look up ltree oids
		SELECT oid, typarray
		FROM pg_type
		WHERE typname = $1 AND pg_type_is_visible(oid)
		`,
		TypeName,
	).Scan(&md.OID, &md.ArrayOID)
	if errors.Is(err, pgx.ErrNoRows) {
		return TypeMetadata{}, ErrNotInstalled
	} else if err != nil {
		return TypeMetadata{}, oops.New(err, "failed to look up ltree in the type catalog")
	}
	return md, nil
}

/*
Works out which oids to use for ltree. The type catalog wins. If it can't be
read, the configured override is used if both oids are set, and the fixed
defaults otherwise. Fallbacks are logged, since values that don't match the
database will cause confusing errors later on.
*/
func ResolveMetadata(ctx context.Context, conn db.ConnOrTx, cfg config.LtreeConfig) (TypeMetadata, MetadataSource) {
	md, err := LookupMetadata(ctx, conn)
	if err == nil {
		return md, SourceCatalog
	}

	if cfg.HasOverride() {
		logging.Warn().
			Err(err).
			Uint32("oid", cfg.OID).
			Uint32("array oid", cfg.ArrayOID).
			Msg("could not look up ltree in the type catalog; using configured oids")
		return TypeMetadata{OID: cfg.OID, ArrayOID: cfg.ArrayOID}, SourceOverride
	}

	md = Ltree{}.Metadata()
	logging.Warn().
		Err(err).
		Uint32("oid", md.OID).
		Uint32("array oid", md.ArrayOID).
		Msg("could not look up ltree in the type catalog; using default oids")
	return md, SourceDefault
}

/*
Registers ltree and ltree[] with the connection's type map, so that string and
[]string values encode and decode as ltree. Values are sent in text format.

Only fails if ctx ends during the lookup; any other lookup failure falls back
as described in ResolveMetadata.
*/
func Register(ctx context.Context, conn *pgx.Conn, cfg config.LtreeConfig) (TypeMetadata, error) {
	md, source := ResolveMetadata(ctx, conn, cfg)
	if err := ctx.Err(); err != nil {
		return TypeMetadata{}, oops.New(err, "interrupted while registering ltree")
	}
	registerTypes(conn.TypeMap(), md)

	logging.Debug().
		Uint32("oid", md.OID).
		Uint32("array oid", md.ArrayOID).
		Str("source", string(source)).
		Msg("registered ltree")
	return md, nil
}

/*
ltree's binary format is its text format behind a version byte, which
TextCodec knows nothing about. Restricting the codec to text also keeps
ltree[] in text format, since ArrayCodec picks binary whenever the element
codec supports it.
*/
type textOnlyCodec struct {
	pgtype.TextCodec
}

func (textOnlyCodec) FormatSupported(format int16) bool {
	return format == pgtype.TextFormatCode
}

func (textOnlyCodec) PreferredFormat() int16 {
	return pgtype.TextFormatCode
}

func registerTypes(m *pgtype.Map, md TypeMetadata) {
	ltreeType := &pgtype.Type{
		Name:  TypeName,
		OID:   md.OID,
		Codec: textOnlyCodec{},
	}
	m.RegisterType(ltreeType)
	m.RegisterType(&pgtype.Type{
		Name:  ArrayTypeName,
		OID:   md.ArrayOID,
		Codec: &pgtype.ArrayCodec{ElementType: ltreeType},
	})
}

// Registers ltree on every new connection. Pass this to db.NewConn or db.NewConnPool.
func AfterConnect(cfg config.LtreeConfig) db.AfterConnectFunc {
	return func(ctx context.Context, conn *pgx.Conn) error {
		_, err := Register(ctx, conn, cfg)
		return err
	}
}
