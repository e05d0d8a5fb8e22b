package service

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	arxivAPIURL    = "http://export.arxiv.org/api/query"
	defaultPapers  = 3
	maxAbstractLen = 300
)

// ResourceService 从arXiv检索与学习主题相关的论文，作为拓展阅读
type ResourceService struct {
	client *http.Client
	apiURL string
}

func NewResourceService() *ResourceService {
	return &ResourceService{
		client: &http.Client{Timeout: 8 * time.Second},
		apiURL: arxivAPIURL,
	}
}

type Paper struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Authors     []string `json:"authors"`
	Link        string   `json:"link"`
	PublishedAt string   `json:"published_at"`
}

// arXiv Atom响应里用到的字段
type arxivFeed struct {
	XMLName xml.Name     `xml:"feed"`
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Links []struct {
		Href string `xml:"href,attr"`
		Rel  string `xml:"rel,attr"`
	} `xml:"link"`
}

// SearchPapers 按主题检索论文，按相关度排序
func (s *ResourceService) SearchPapers(topic string, maxResults int) ([]Paper, error) {
	if maxResults <= 0 || maxResults > 20 {
		maxResults = defaultPapers
	}

	query := url.Values{}
	query.Set("search_query", "all:"+topic)
	query.Set("start", "0")
	query.Set("max_results", fmt.Sprintf("%d", maxResults))
	query.Set("sortBy", "relevance")

	resp, err := s.client.Get(s.apiURL + "?" + query.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API error: status %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}

	papers := make([]Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		paper := Paper{
			Title:       strings.TrimSpace(entry.Title),
			Summary:     trimAbstract(entry.Summary),
			PublishedAt: entry.Published,
		}
		for _, author := range entry.Authors {
			paper.Authors = append(paper.Authors, author.Name)
		}
		for _, link := range entry.Links {
			if link.Rel == "alternate" || paper.Link == "" {
				paper.Link = link.Href
			}
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

// trimAbstract 摘要太长时截断，避免响应里塞满整段论文摘要
func trimAbstract(summary string) string {
	summary = strings.TrimSpace(summary)
	runes := []rune(summary)
	if len(runes) <= maxAbstractLen {
		return summary
	}
	return string(runes[:maxAbstractLen]) + "..."
}
