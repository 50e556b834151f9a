package service

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/craftshowcase/internal/models"
)

// SitemapURL sitemap 条目
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapService 站点地图
type SitemapService struct {
	baseURL string
	locales []string
	now     func() time.Time
}

// NewSitemapService 创建站点地图服务
func NewSitemapService(baseURL string, locales []string) *SitemapService {
	if len(locales) == 0 {
		locales = []string{models.LocaleEN, models.LocaleZH, models.LocaleAR}
	}
	return &SitemapService{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		locales: locales,
		now:     time.Now,
	}
}

// Entries 生成全部语言下的首页、商品、分类与静态页地址
func (s *SitemapService) Entries(listings []models.Listing, categories []models.Category) []SitemapURL {
	today := s.now().UTC().Format("2006-01-02")
	entries := make([]SitemapURL, 0, len(s.locales)*(len(listings)+len(categories)+4))
	add := func(path, lastMod, freq, priority string) {
		entries = append(entries, SitemapURL{Loc: s.baseURL + path, LastMod: lastMod, ChangeFreq: freq, Priority: priority})
	}

	for _, locale := range s.locales {
		add("/"+locale, today, "daily", "1.0")
	}
	for _, item := range listings {
		lastMod := today
		if parsed, err := time.Parse(time.RFC3339, item.UpdatedAt); err == nil {
			lastMod = parsed.UTC().Format("2006-01-02")
		}
		for _, locale := range s.locales {
			add(fmt.Sprintf("/%s/products/%s", locale, item.ID), lastMod, "weekly", "0.8")
		}
	}
	for _, category := range categories {
		for _, locale := range s.locales {
			add(fmt.Sprintf("/%s/category/%s", locale, category.Slug), today, "weekly", "0.7")
		}
	}
	for _, locale := range s.locales {
		add("/"+locale+"/products", today, "daily", "0.9")
		add("/"+locale+"/quote", today, "monthly", "0.6")
		add("/"+locale+"/contact", today, "monthly", "0.5")
	}
	return entries
}

// Render 输出 sitemap XML
func (s *SitemapService) Render(listings []models.Listing, categories []models.Category) ([]byte, error) {
	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  s.Entries(listings, categories),
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
