package verify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ProcessPaths runs every scenario file under the given paths in order and
// returns the reports. Directories are walked recursively; a progress bar
// is shown for directory batches. Scenarios run strictly sequentially;
// exploration within one production path is single-threaded.
func ProcessPaths(ctx context.Context, logger *zap.Logger, paths []string) ([]*Report, error) {
	var reports []*Report
	for _, path := range paths {
		batch, err := processPath(ctx, logger, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		reports = append(reports, batch...)
	}
	return reports, nil
}

func processPath(ctx context.Context, logger *zap.Logger, path string) ([]*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasScenarioExtension(path) {
			return nil, nil
		}
		rep, err := Run(path)
		if err != nil {
			return nil, err
		}
		return []*Report{rep}, nil
	}

	var files []string
	filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err == nil && !fileInfo.IsDir() && hasScenarioExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var reports []*Report
	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rep, err := Run(file)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing scenario", zap.String("file", file), zap.Error(err))
			}
			return nil, err
		}
		reports = append(reports, rep)
		bar.Add(1)
	}
	fmt.Println()
	return reports, nil
}

var scenarioExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

func hasScenarioExtension(path string) bool {
	return scenarioExtensions[filepath.Ext(path)]
}
