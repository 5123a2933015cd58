package source

import (
	"database/sql"
	"fmt"
	"iter"
	"strings"

	_ "github.com/lib/pq"
	"github.com/paulmach/orb/geojson"

	"github.com/maproom/mafe/internal/proj"
)

// postgisDefaultSRID is assumed when a postgis source omits its SRID;
// stored geometries are commonly web mercator in tiling setups.
const postgisDefaultSRID = 3857

// Postgis reads features from a PostGIS table. The source path carries
// the connection string and the table name separated by a '#', e.g.
//
//	source postgis "host=localhost dbname=gis#roads" 3857
//
// Rows are fetched as GeoJSON through ST_AsGeoJSON so every column
// lands in feature properties, and materialized at init time.
type Postgis struct {
	attrs
	features   []*geojson.Feature
	projection proj.Projection
}

// NewPostgis connects, reads the whole table, and closes the
// connection.
func NewPostgis(path string, sourceSRID, targetSRID int64) (*Postgis, error) {
	if sourceSRID == 0 {
		sourceSRID = postgisDefaultSRID
	}

	conninfo, table, ok := strings.Cut(path, "#")
	if !ok || table == "" {
		return nil, ErrSourceInit.New("postgis path wants \"conninfo#table\", got " + path)
	}
	if strings.ContainsAny(table, `"; `) {
		return nil, ErrSourceInit.New("invalid table name " + table)
	}

	db, err := sql.Open("postgres", conninfo)
	if err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf(`SELECT ST_AsGeoJSON(t.*) FROM %q t`, table))
	if err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}
	defer rows.Close()

	var features []*geojson.Feature
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, ErrSourceInit.New(err.Error())
		}
		f, err := geojson.UnmarshalFeature(raw)
		if err != nil {
			return nil, ErrSourceInit.New(err.Error())
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}

	projection, err := proj.For(sourceSRID, targetSRID)
	if err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}

	return &Postgis{features: features, projection: projection}, nil
}

// Iterate yields the table's rows in query order.
func (p *Postgis) Iterate() iter.Seq[*geojson.Feature] {
	return func(yield func(*geojson.Feature) bool) {
		for _, f := range p.features {
			if !yield(f) {
				return
			}
		}
	}
}

func (p *Postgis) Projection() proj.Projection {
	return p.projection
}
