/*
Copyright The wolauncher Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package action

import (
	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/pkg/catalog"
	"github.com/wolauncher/wolauncher/pkg/config"
)

// List shows the available clients and launch profiles.
type List struct {
	cfg *Configuration

	// Filter is a glob matched against client names, e.g. "Live*".
	Filter string
}

// ListResult is the outcome of List.
type ListResult struct {
	Clients  []catalog.Client
	Profiles []*config.Profile
}

// NewList creates a new List object with the given configuration.
func NewList(cfg *Configuration) *List {
	return &List{cfg: cfg}
}

// Run fetches the catalog and filters its clients.
func (l *List) Run() (*ListResult, error) {
	var match glob.Glob
	if l.Filter != "" {
		g, err := glob.Compile(l.Filter)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid filter %q", l.Filter)
		}
		match = g
	}

	c, err := l.cfg.Catalog.Fetch()
	if err != nil {
		return nil, err
	}
	res := &ListResult{Profiles: l.cfg.Config.Profiles}
	for _, cl := range c.Clients {
		if match == nil || match.Match(cl.Name) {
			res.Clients = append(res.Clients, cl)
		}
	}
	return res, nil
}
