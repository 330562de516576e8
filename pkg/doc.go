// Package pkg contains the building blocks of the dotstitch design
// engine. The flow through the system is:
//
//	roster + templates -> composer -> scene -> store
//	                                   |
//	                                   +-> export
//
// A roster ([roster]) describes the players a design is produced for.
// The composer ([composer]) loads the garment template for a view,
// applies any stored placements and populates the scene ([scene]) with
// text and picture objects. Placements are persisted per player and
// view through the positions store ([store]), which supports in-memory,
// file, Redis and MongoDB backends. The export package ([export])
// rasterizes a scene at print resolution to PNG, JPEG or WebP.
//
// Supporting packages: [assets] loads template and logo images from
// files, HTTP URLs or data URLs, [fonts] resolves font families to
// typefaces and measures text, [geom] provides rectangle math,
// [errors] carries machine-readable error codes across package
// boundaries, [config] reads the TOML configuration and [observability]
// exposes hook points for instrumenting loads, saves and exports.
//
// [roster]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/roster
// [composer]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/composer
// [scene]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/scene
// [store]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/store
// [export]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/export
// [assets]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/assets
// [fonts]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/fonts
// [geom]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/geom
// [errors]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/errors
// [config]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/config
// [observability]: https://pkg.go.dev/github.com/dotstitch/dotstitch/pkg/observability
package pkg
