package pubgrub

import (
	"fmt"
	"testing"
)

// benchmarkProvider builds a layered universe: width packages per layer,
// each depending on every package of the next layer, three versions each.
func benchmarkProvider(b *testing.B, layers, width int) (*InMemoryProvider, Package) {
	b.Helper()
	provider := NewInMemoryProvider()
	root := MakeRootPackage("root")
	rootVersion := MustParseVersion("1.0.0")
	provider.AddVersion(root, rootVersion)

	versions := []Version{
		MustParseVersion("1.0.0"),
		MustParseVersion("1.1.0"),
		MustParseVersion("1.2.0"),
	}
	anyV1 := MustParseRange(">=1.0.0, <2.0.0")

	name := func(layer, i int) Package {
		return MakePackage(fmt.Sprintf("pkg-%d-%d", layer, i))
	}

	for layer := 0; layer < layers; layer++ {
		for i := 0; i < width; i++ {
			pkg := name(layer, i)
			for _, ver := range versions {
				provider.AddVersion(pkg, ver)
				if layer+1 < layers {
					for j := 0; j < width; j++ {
						provider.AddDependency(pkg, ver, Dependency{Package: name(layer+1, j), Range: anyV1})
					}
				}
			}
		}
	}
	for i := 0; i < width; i++ {
		provider.AddDependency(root, rootVersion, Dependency{Package: name(0, i), Range: anyV1})
	}
	return provider, root
}

func BenchmarkSolveLayered(b *testing.B) {
	provider, root := benchmarkProvider(b, 4, 4)
	cached := NewCachedProvider(provider)
	rootVersion := MustParseVersion("1.0.0")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Solve(cached, root, rootVersion); err != nil {
			b.Fatalf("Solve: %v", err)
		}
	}
}

func BenchmarkSolveConflictAvoidance(b *testing.B) {
	provider := NewInMemoryProvider()
	root := MakeRootPackage("root")
	rootVersion := MustParseVersion("1.0.0")
	provider.AddVersion(root, rootVersion)

	// Only the lowest version of link avoids a conflict with root's cap on
	// the shared package.
	shared := MakePackage("shared")
	provider.AddVersion(shared, MustParseVersion("1.0.0"))
	link := MakePackage("link")
	for minor := 0; minor < 10; minor++ {
		ver := Version{Major: 1, Minor: uint64(minor)}
		provider.AddVersion(link, ver)
		if minor > 0 {
			provider.AddDependency(link, ver, Dependency{Package: shared, Range: MustParseRange(">=2.0.0")})
		}
	}
	provider.AddDependency(root, rootVersion, Dependency{Package: link, Range: MustParseRange(">=1.0.0")})
	provider.AddDependency(root, rootVersion, Dependency{Package: shared, Range: MustParseRange("<2.0.0")})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		solution, err := Solve(provider, root, rootVersion)
		if err != nil {
			b.Fatalf("Solve: %v", err)
		}
		if got, _ := solution.GetVersion(link); got != (Version{Major: 1}) {
			b.Fatalf("link = %s, want 1.0.0", got)
		}
	}
}

func BenchmarkVersionSetIntersection(b *testing.B) {
	s := MustParseRange(">=1.0.0, <2.0.0 || >=3.0.0, <4.0.0 || >=5.0.0")
	u := MustParseRange(">=1.5.0, <3.5.0 || >=4.5.0")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Intersection(u)
	}
}

func BenchmarkParseRange(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ParseRange(">=1.0.0, <2.0.0 || >=3.0.0"); err != nil {
			b.Fatal(err)
		}
	}
}
