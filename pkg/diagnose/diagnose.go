package diagnose

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/launchkit/mccore/pkg/checksum"
	"github.com/launchkit/mccore/pkg/layout"
	"github.com/launchkit/mccore/pkg/mcerr"
	"github.com/launchkit/mccore/pkg/version"
)

// maxWorkers bounds the diagnoser's fan-out so a large asset tree doesn't
// exhaust file descriptors, generalizing the teacher's
// downloadMissingFiles worker pool (pkg/game/folder/game_folder.go), which
// sizes itself to runtime.NumCPU() with no ceiling.
const maxWorkers = 32

// Options configures Diagnose.
type Options struct {
	// Strict swaps which of libraries and asset objects gets the fast
	// stat-first path and which gets a full hash every time: for
	// libraries, Strict trusts a matching on-disk size and only hashes on
	// a size mismatch, while non-strict always hashes; for asset objects
	// it's the reverse — Strict always hashes, non-strict trusts a
	// matching size. Either way, a file with no declared checksum is
	// never hashed.
	Strict bool

	// resolved, when non-nil, is used instead of calling version.Resolve.
	// It is unexported, so only code inside this package can set it.
	resolved *version.ResolvedVersion
}

type assetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

type assetIndexFile struct {
	Objects map[string]assetObject `json:"objects"`
}

// Diagnose resolves versionID under minecraftRoot, then checks the client
// jar, asset index, every resolved library, and (if the index itself is
// intact) every asset object it names.
func Diagnose(ctx context.Context, minecraftRoot, versionID string, opts Options, resolveOpts ...version.Option) *Report {
	report := &Report{MinecraftLocation: minecraftRoot, Version: versionID}

	rv := opts.resolved
	if rv == nil {
		resolved, err := version.Resolve(minecraftRoot, versionID, resolveOpts...)
		if err != nil {
			report.add(issueFromResolveError(versionID, err))
			return report
		}
		rv = resolved
	}

	if ctx.Err() != nil {
		return report
	}

	jarPath := layout.VersionJar(minecraftRoot, rv.ID, layout.JarClient)
	clientDownload, hasClient := rv.Downloads["client"]
	if hasClient {
		if issue := diagnoseFile(ctx, jarPath, clientDownload.SHA1, RoleClientJar, rv.ID, false); issue != nil {
			report.add(*issue)
		}
	}

	assetIndexPath := layout.AssetsIndex(minecraftRoot, rv.AssetIndex.ID)
	indexIssue := diagnoseFile(ctx, assetIndexPath, rv.AssetIndex.SHA1, RoleAssetIndex, rv.Assets, opts.Strict)
	if indexIssue != nil {
		report.add(*indexIssue)
	}

	if ctx.Err() != nil {
		return report
	}

	libIssues := diagnoseLibraries(ctx, minecraftRoot, rv.Libraries, opts.Strict)
	report.Issues = append(report.Issues, libIssues...)

	if indexIssue == nil {
		assetIssues := diagnoseAssetIndex(ctx, minecraftRoot, assetIndexPath, opts.Strict)
		report.Issues = append(report.Issues, assetIssues...)
	}

	return report
}

func issueFromResolveError(versionID string, err error) Issue {
	var missing *mcerr.MissingVersionJson
	var corrupted *mcerr.CorruptedVersionJson
	path := ""
	switch {
	case errors.As(err, &missing):
		path = missing.Path
	case errors.As(err, &corrupted):
		path = corrupted.Path
	}
	return Issue{Role: RoleVersionJSON, Kind: Missing, Path: path, Hint: versionID, Expected: "", Actual: err.Error()}
}

// diagnoseFile is the file diagnose primitive: absent ⇒ missing; present
// with a non-empty expected checksum ⇒ hash and compare; otherwise no
// issue. The strict parameter is unused here — every caller that wants a
// stat-first fast path goes through diagnoseFileBySize instead.
func diagnoseFile(ctx context.Context, path, expectedSHA1 string, role IssueRole, hint string, strict bool) *Issue {
	if ctx.Err() != nil {
		return nil
	}

	size := checksum.SizeFile(path)
	if size < 0 {
		return &Issue{Role: role, Kind: Missing, Path: path, Hint: hint}
	}

	if expectedSHA1 == "" {
		return nil
	}

	actual, err := checksum.SHA1File(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return &Issue{Role: role, Kind: Missing, Path: path, Hint: hint, Actual: err.Error()}
	}
	if actual != expectedSHA1 {
		return &Issue{Role: role, Kind: Corrupted, Path: path, Hint: hint, Expected: expectedSHA1, Actual: actual}
	}
	return nil
}

// diagnoseFileBySize is the stat-first fast path: it only escalates to a
// hash check when the declared size is known and disagrees with the file
// on disk.
func diagnoseFileBySize(ctx context.Context, path string, expectedSize int64, expectedSHA1 string, role IssueRole, hint string) *Issue {
	if ctx.Err() != nil {
		return nil
	}
	size := checksum.SizeFile(path)
	if size < 0 {
		return &Issue{Role: role, Kind: Missing, Path: path, Hint: hint}
	}
	if expectedSize < 0 || size == expectedSize {
		return nil
	}
	return diagnoseFile(ctx, path, expectedSHA1, role, hint, false)
}

func diagnoseLibraries(ctx context.Context, minecraftRoot string, libs []version.ResolvedLibrary, strict bool) []Issue {
	return fanOut(ctx, len(libs), func(i int) *Issue {
		lib := libs[i]
		path := layout.Library(minecraftRoot, lib.Download.Path)
		if strict {
			return diagnoseFileBySize(ctx, path, lib.Download.Size, lib.Download.SHA1, RoleLibrary, lib.Name)
		}
		return diagnoseFile(ctx, path, lib.Download.SHA1, RoleLibrary, lib.Name, false)
	})
}

func diagnoseAssetIndex(ctx context.Context, minecraftRoot, assetIndexPath string, strict bool) []Issue {
	data, err := os.ReadFile(assetIndexPath)
	if err != nil {
		return nil
	}
	var idx assetIndexFile
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil
	}

	names := make([]string, 0, len(idx.Objects))
	for name := range idx.Objects {
		names = append(names, name)
	}

	return fanOut(ctx, len(names), func(i int) *Issue {
		name := names[i]
		obj := idx.Objects[name]
		path := layout.Asset(minecraftRoot, obj.Hash)
		if strict {
			return diagnoseFile(ctx, path, obj.Hash, RoleAssetObject, name, false)
		}
		return diagnoseFileBySize(ctx, path, obj.Size, obj.Hash, RoleAssetObject, name)
	})
}

// fanOut runs check(i) for i in [0,n) over a bounded worker pool,
// collecting the non-nil results. Each check is independent of the
// others, so the result is the same regardless of what order or
// concurrency the checks actually run under.
func fanOut(ctx context.Context, n int, check func(int) *Issue) []Issue {
	if n == 0 {
		return nil
	}

	workers := maxWorkers
	if workers > n {
		workers = n
	}

	indexCh := make(chan int, n)
	for i := 0; i < n; i++ {
		indexCh <- i
	}
	close(indexCh)

	var mu sync.Mutex
	var issues []Issue
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexCh {
				if ctx.Err() != nil {
					continue
				}
				if issue := check(i); issue != nil {
					mu.Lock()
					issues = append(issues, *issue)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	return issues
}
