package repodata

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBin is the indexer invoked when none is configured.
const DefaultBin = "createrepo_c"

// Indexer regenerates the metadata of a repository directory.
type Indexer interface {
	Index(ctx context.Context, dir string) error
}

// Createrepo shells out to a createrepo-compatible indexer. The zero value
// runs DefaultBin with no cache directory and no time limit.
type Createrepo struct {
	Bin      string
	CacheDir string
	Timeout  time.Duration
}

func (c *Createrepo) binary() string {
	if c.Bin != "" {
		return c.Bin
	}
	return DefaultBin
}

func (c *Createrepo) args(dir string) []string {
	var args []string
	if c.CacheDir != "" {
		args = append(args, "--cachedir", c.CacheDir)
	}
	return append(args, "-q", dir)
}

// Index runs the indexer over dir and waits for it to finish. Output is only
// surfaced on failure; the quiet flag keeps the happy path silent.
func (c *Createrepo) Index(ctx context.Context, dir string) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	bin := c.binary()
	args := c.args(dir)
	logrus.Debugf("Running %s %s", bin, strings.Join(args, " "))

	out, err := exec.CommandContext(ctx, bin, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s failed: %w: %s", bin, err, msg)
		}
		return fmt.Errorf("%s failed: %w", bin, err)
	}
	return nil
}
