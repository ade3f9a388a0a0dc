// Package mash resolves build tags from mash repository configuration. Each
// mash run writes a <repo>.mash file next to the main mash.conf; the tag
// entry inside names the koji tag the repository was composed from.
package mash

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Resolver locates per-repository mash files under a configuration directory.
type Resolver struct {
	ConfDir string
}

// NewResolver derives the configuration directory from the path of the main
// mash configuration file.
func NewResolver(mashConf string) *Resolver {
	return &Resolver{ConfDir: filepath.Dir(mashConf)}
}

// Tag returns the build tag recorded for repo, matching on the repository's
// base name. The first "tag =" entry wins and its last whitespace-separated
// field is the value. A missing configuration or a configuration without a
// tag entry reports false.
func (r *Resolver) Tag(repo string) (string, bool) {
	confPath := filepath.Join(r.ConfDir, filepath.Base(repo)+".mash")

	f, err := os.Open(confPath)
	if err != nil {
		logrus.Errorf("Cannot find mash configuration for %s: %s", repo, confPath)
		return "", false
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Text()
		if !strings.HasPrefix(line, "tag =") {
			continue
		}
		fields := strings.Fields(line)
		return fields[len(fields)-1], true
	}
	if err := s.Err(); err != nil {
		logrus.Errorf("Failed to read mash configuration %s: %v", confPath, err)
		return "", false
	}

	logrus.Warnf("No tag entry in mash configuration %s", confPath)
	return "", false
}
