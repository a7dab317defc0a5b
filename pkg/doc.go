// Package pkg provides the core libraries for skyline street scenes.
//
// # Overview
//
// Skyline turns a one-line street descriptor such as "b:3,2,# p:5,* e:4,_X"
// into a framed ASCII drawing. The pkg directory is organized into three areas:
//
//  1. [street] - Domain logic (elements, descriptor grammar, scene composition)
//  2. [pipeline] - Orchestration (parse → compose → encode) with caching
//  3. Infrastructure: [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Descriptor line / scene file
//	         ↓
//	    [street] or [sceneio] (parse into elements)
//	         ↓
//	    [street.Scene] (width, height, rows top to bottom)
//	         ↓
//	    [sceneio] (text or JSON encoding)
//	         ↓
//	    stdout / file / HTTP response
//
// # Quick Start
//
//	scene, err := street.ParseScene("b:3,2,# p:5,*")
//	if err != nil {
//	    return err
//	}
//	scene.WriteTo(os.Stdout)
//
// Or through the cached pipeline used by the CLI and the render service:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Descriptor: "p:5,*"})
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/street    # Examples only
//	go test -tags integration ./pkg/...  # Include the Redis cache test
//
// [street]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/street
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/buildinfo
//
// [street.Scene]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/street#Scene
// [sceneio]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/sceneio
package pkg
