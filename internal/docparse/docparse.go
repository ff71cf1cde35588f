// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package docparse

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/version"
)

// Selectors of the jazzy page layout.
const (
	navGroupsSelector = "ul.nav-groups"
	navGroupSelector  = "li.nav-group-name"
	navTaskSelector   = "li.nav-group-task"
	itemSelector      = "div.task-group li.item"
	itemNameSelector  = "a.token"
	languageSelector  = "div.language"
)

// Item is one documented declaration on an api type or api page.
type Item struct {
	Name        string
	Declaration []string
}

type api struct {
	name        string
	link        string
	url         string
	declaration []string
	subAPIs     *apitree.Children
}

type apiType struct {
	name  string
	link  string
	url   string
	apis  []*api
	index map[string]*api
}

// Scraper reads jazzy output from the local file system.
type Scraper struct {
	collector *colly.Collector
}

// NewScraper returns a Scraper whose requests are bound to ctx.
func NewScraper(ctx context.Context) *Scraper {
	t := &http.Transport{}
	t.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
	)
	c.UserAgent = version.UserAgent()
	c.WithTransport(t)
	return &Scraper{collector: c}
}

// ParseModuleDocs scrapes the jazzy documentation in docDir into the api type
// nodes of one module.
func ParseModuleDocs(ctx context.Context, docDir string) (*apitree.Children, error) {
	return NewScraper(ctx).Module(docDir)
}

// Module scrapes the jazzy documentation in docDir.
func (s *Scraper) Module(docDir string) (*apitree.Children, error) {
	abs, err := filepath.Abs(docDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apitree.ErrIO, err)
	}
	base := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs) + "/"}).String()

	types, err := s.index(base)
	if err != nil {
		return nil, err
	}

	for _, at := range types {
		items, err := s.Items(at.url)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			a, ok := at.index[item.Name]
			if !ok {
				log.Warnf("%s: %s is not listed in the index", at.name, item.Name)
				continue
			}
			a.declaration = append(a.declaration, item.Declaration...)
		}

		for _, a := range at.apis {
			if !strings.HasSuffix(a.link, ".html") {
				continue
			}
			subs, err := s.Items(a.url)
			if err != nil {
				return nil, err
			}
			for _, sub := range subs {
				a.subAPIs.Put(&apitree.Leaf{
					Header:      apitree.Header{Key: sub.Name, Level: apitree.LevelSubAPI},
					Declaration: sub.Declaration,
				})
			}
		}
	}

	children := apitree.NewChildren()
	for _, at := range types {
		children.Put(at.node())
	}
	log.Debugf("parsed %s: api types=%d", docDir, children.Len())
	return children, nil
}

// index reads the module index at base.
func (s *Scraper) index(base string) ([]*apiType, error) {
	var (
		types []*apiType
		found bool
	)

	c := s.collector.Clone()
	c.OnHTML(navGroupsSelector, func(e *colly.HTMLElement) {
		if found {
			return
		}
		found = true

		e.DOM.Find(navGroupSelector).Each(func(_ int, group *goquery.Selection) {
			link := group.Find("a").First()
			href, _ := link.Attr("href")
			at := &apiType{
				name:  strings.TrimSpace(link.Text()),
				link:  href,
				url:   e.Request.AbsoluteURL(href),
				index: map[string]*api{},
			}

			group.Find(navTaskSelector).Each(func(_ int, task *goquery.Selection) {
				link := task.Find("a").First()
				href, _ := link.Attr("href")
				a := &api{
					name:        strings.TrimSpace(link.Text()),
					link:        href,
					url:         e.Request.AbsoluteURL(href),
					declaration: []string{},
					subAPIs:     apitree.NewChildren(),
				}
				if _, dup := at.index[a.name]; !dup {
					at.apis = append(at.apis, a)
				}
				at.index[a.name] = a
			})
			types = append(types, at)
		})
	})

	if err := visit(c, base); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s has no %s", apitree.ErrSchemaMismatch, base, navGroupsSelector)
	}
	return types, nil
}

// Items reads the documented declarations of an api type or api page.
func (s *Scraper) Items(pageURL string) ([]Item, error) {
	var items []Item

	c := s.collector.Clone()
	c.OnHTML(itemSelector, func(e *colly.HTMLElement) {
		name := strings.TrimSpace(e.DOM.Find(itemNameSelector).First().Text())
		if name == "" {
			return
		}
		item := Item{Name: name, Declaration: []string{}}
		e.DOM.Find(languageSelector).Each(func(_ int, lang *goquery.Selection) {
			item.Declaration = append(item.Declaration, StrippedText(lang))
		})
		items = append(items, item)
	})

	if err := visit(c, pageURL); err != nil {
		return nil, err
	}
	log.Tracef("%s: items=%d", pageURL, len(items))
	return items, nil
}

func visit(c *colly.Collector, pageURL string) error {
	log.Debugf("visiting %s", pageURL)
	if err := c.Visit(pageURL); err != nil {
		return fmt.Errorf("%w: %s: %v", apitree.ErrIO, pageURL, err)
	}
	c.Wait()
	return nil
}

func (at *apiType) node() *apitree.Branch {
	apis := apitree.NewChildren()
	for _, a := range at.apis {
		apis.Put(a.node())
	}
	return &apitree.Branch{
		Header: apitree.Header{
			Key:   at.name,
			Level: apitree.LevelAPIType,
			Attrs: apitree.Attrs{apitree.StringAttr("api_type_link", at.link)},
		},
		Children: apis,
	}
}

func (a *api) node() apitree.Node {
	h := apitree.Header{
		Key:   a.name,
		Level: apitree.LevelAPI,
		Attrs: apitree.Attrs{apitree.StringAttr("api_link", a.link)},
	}
	if a.subAPIs.Len() == 0 {
		return &apitree.Leaf{Header: h, Declaration: a.declaration}
	}
	return &apitree.Branch{Header: h, Declaration: a.declaration, Children: a.subAPIs}
}

// ModuleNode wraps the api types of one module. path is the documentation
// directory; an empty path marks a module whose documentation failed to build.
func ModuleNode(name, path string, apiTypes *apitree.Children) *apitree.Branch {
	return &apitree.Branch{
		Header: apitree.Header{
			Key:   name,
			Level: apitree.LevelModule,
			Attrs: apitree.Attrs{apitree.StringAttr("path", path)},
		},
		Children: apiTypes,
	}
}
