package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

const fatihaJSON = `{
	"code": 200,
	"status": "OK",
	"data": {
		"number": 1,
		"englishName": "Al-Faatiha",
		"ayahs": [
			{"numberInSurah": 1, "text": "بسم الله الرحمن الرحيم"},
			{"numberInSurah": 2, "text": "الحمد لله رب العالمين"},
			{"numberInSurah": 3, "text": "الرحمن الرحيم"}
		]
	}
}`

func newTestServer(t *testing.T, wantPath string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("path = %q, want %q", r.URL.Path, wantPath)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fatihaJSON))
	}))
}

func TestGetSurah(t *testing.T) {
	srv := newTestServer(t, "/surah/1/quran-uthmani")
	defer srv.Close()

	c := NewClient(srv.URL, "", zap.NewNop())
	surah, err := c.GetSurah(context.Background(), 1, "quran-uthmani")
	if err != nil {
		t.Fatalf("GetSurah() error = %v", err)
	}

	if surah.Number != 1 {
		t.Errorf("Number = %d, want 1", surah.Number)
	}
	if surah.Name != "Al-Faatiha" {
		t.Errorf("Name = %q, want Al-Faatiha", surah.Name)
	}
	if len(surah.Ayahs) != 3 {
		t.Fatalf("len(Ayahs) = %d, want 3", len(surah.Ayahs))
	}
	if surah.Ayahs[0].ID != "001001" {
		t.Errorf("Ayahs[0].ID = %q, want 001001", surah.Ayahs[0].ID)
	}
	if surah.Ayahs[2].NumberInSurah != 3 {
		t.Errorf("Ayahs[2].NumberInSurah = %d, want 3", surah.Ayahs[2].NumberInSurah)
	}
}

func TestGetVerses_Range(t *testing.T) {
	srv := newTestServer(t, "/surah/1/quran-uthmani")
	defer srv.Close()

	c := NewClient(srv.URL, "", zap.NewNop())
	verses, err := c.GetVerses(context.Background(), 1, 2, 3, "quran-uthmani")
	if err != nil {
		t.Fatalf("GetVerses() error = %v", err)
	}
	if len(verses) != 2 {
		t.Fatalf("len(verses) = %d, want 2", len(verses))
	}
	if verses[0].NumberInSurah != 2 || verses[1].NumberInSurah != 3 {
		t.Errorf("got ayahs %d,%d, want 2,3", verses[0].NumberInSurah, verses[1].NumberInSurah)
	}
}

func TestGetVerses_RangeBeyondSurah(t *testing.T) {
	srv := newTestServer(t, "/surah/1/quran-uthmani")
	defer srv.Close()

	c := NewClient(srv.URL, "", zap.NewNop())
	verses, err := c.GetVerses(context.Background(), 1, 2, 50, "quran-uthmani")
	if err != nil {
		t.Fatalf("GetVerses() error = %v", err)
	}
	if len(verses) != 2 {
		t.Errorf("len(verses) = %d, want 2", len(verses))
	}
}

func TestGetSurah_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":404,"status":"NOT FOUND"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", zap.NewNop())
	if _, err := c.GetSurah(context.Background(), 200, "quran-uthmani"); err == nil {
		t.Error("expected error for 404 response")
	}
}
