package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"followcheck/core"
	"followcheck/internal/report"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// Export file names, e.g. followers_1.json, following.json. Siblings such as
// following_hashtags.json are not relationship lists.
var (
	followersFile = regexp.MustCompile(`(?i)^followers(_\d+)?\.json$`)
	followingFile = regexp.MustCompile(`(?i)^following(_\d+)?\.json$`)
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var (
		followerPaths  []string
		followingPaths []string
		exportDir      string
		format         string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report accounts that do not follow you back",
		Example: `  followcheck analyze --followers followers_1.json --following following.json
  followcheck analyze --export-dir ~/Downloads/instagram-export --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatJSON {
				return fmt.Errorf("invalid format %q (must be text or json)", format)
			}

			if exportDir != "" {
				followers, following, err := discoverExportFiles(exportDir)
				if err != nil {
					return err
				}
				followerPaths = append(followerPaths, followers...)
				followingPaths = append(followingPaths, following...)
			}

			followerDocs, err := readDocuments(followerPaths)
			if err != nil {
				return err
			}

			followingDocs, err := readDocuments(followingPaths)
			if err != nil {
				return err
			}

			result, err := core.Check(followerDocs, followingDocs)
			if err != nil {
				return err
			}

			a.log.Debug("analyzed export",
				zap.Strings("followers_files", followerPaths),
				zap.Strings("following_files", followingPaths),
				zap.Int("follower_count", result.FollowerCount),
				zap.Int("following_count", result.FollowingCount),
				zap.Int("not_following_back", len(result.NotFollowingBack)),
			)

			if format == formatJSON {
				return report.JSON(cmd.OutOrStdout(), result)
			}
			return report.Text(cmd.OutOrStdout(), result, report.Options{ProfileBaseURL: a.cfg.Report.ProfileBaseURL})
		},
	}

	cmd.Flags().StringArrayVar(&followerPaths, "followers", nil, "Followers export file (repeatable), e.g. followers_1.json")
	cmd.Flags().StringArrayVar(&followingPaths, "following", nil, "Following export file (repeatable), e.g. following.json")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory of an unpacked export; followers*.json and following*.json are found recursively")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text, json)")

	return cmd
}

// discoverExportFiles walks dir and returns the followers and following files
// it contains, each sorted by path.
func discoverExportFiles(dir string) ([]string, []string, error) {
	var followers, following []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		switch {
		case followersFile.MatchString(d.Name()):
			followers = append(followers, path)
		case followingFile.MatchString(d.Name()):
			following = append(following, path)
		}

		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan export dir: %w", err)
	}

	if len(followers) == 0 && len(following) == 0 {
		return nil, nil, errors.New("no followers or following files found in " + dir)
	}

	sort.Strings(followers)
	sort.Strings(following)

	return followers, following, nil
}

func readDocuments(paths []string) ([]core.Document, error) {
	docs := make([]core.Document, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read export file: %w", err)
		}
		docs = append(docs, core.Document{Name: path, Data: data})
	}

	return docs, nil
}
