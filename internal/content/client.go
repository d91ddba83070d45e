// Package content fetches Quran text from a verse content API
// (alquran.cloud compatible). The engine only ever needs surah text and
// translations, so the client surface stays small.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hamdan/hifzi/internal/quran"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// GetSurah fetches a full surah in the given edition (e.g. "quran-uthmani").
func (c *Client) GetSurah(ctx context.Context, number int, edition string) (*quran.Surah, error) {
	url := fmt.Sprintf("%s/surah/%d/%s", c.baseURL, number, edition)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	c.log.Debug("fetching surah", zap.Int("surah", number), zap.String("edition", edition))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data surahResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return mapSurah(&result.Data), nil
}

// GetVerses fetches a contiguous ayah range of a surah. Out-of-range
// bounds are clamped to what the surah actually has.
func (c *Client) GetVerses(ctx context.Context, surahNumber, from, to int, edition string) ([]quran.Verse, error) {
	surah, err := c.GetSurah(ctx, surahNumber, edition)
	if err != nil {
		return nil, err
	}

	var verses []quran.Verse
	for _, v := range surah.Ayahs {
		if v.NumberInSurah >= from && v.NumberInSurah <= to {
			verses = append(verses, v)
		}
	}
	return verses, nil
}

type surahResponse struct {
	Number int            `json:"number"`
	Name   string         `json:"englishName"`
	Ayahs  []ayahResponse `json:"ayahs"`
}

type ayahResponse struct {
	NumberInSurah int    `json:"numberInSurah"`
	Text          string `json:"text"`
}

func mapSurah(r *surahResponse) *quran.Surah {
	surah := &quran.Surah{
		Number: r.Number,
		Name:   r.Name,
		Ayahs:  make([]quran.Verse, len(r.Ayahs)),
	}
	for i, a := range r.Ayahs {
		surah.Ayahs[i] = quran.Verse{
			ID:            quran.FormatAyahID(r.Number, a.NumberInSurah),
			SurahNumber:   r.Number,
			NumberInSurah: a.NumberInSurah,
			Text:          a.Text,
		}
	}
	return surah
}
