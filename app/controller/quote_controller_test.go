package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteBody = `{"productId":"flyer","quantities":[100,500],"material_id":"gloss","width":210,"height":297,"sides":"4+4"}`

func newTestQuoteController(docs *stubDocuments) *QuoteController {
	qc := NewQuoteController(NewPricingController(&recordingCalculator{}, 10, "4+0"), docs)
	qc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return qc
}

func TestQuoteSheetHTML(t *testing.T) {
	docs := &stubDocuments{}
	qc := newTestQuoteController(docs)

	rec := httptest.NewRecorder()
	qc.QuoteSheet(rec, httptest.NewRequest(http.MethodPost, "/pricing/quote-sheet", strings.NewReader(quoteBody)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Regexp(t, `^Q-[0-9A-F]{8}$`, docs.got.Number)
	assert.Contains(t, rec.Body.String(), docs.got.Number)
	assert.Equal(t, "flyer", docs.got.ProductID)
	assert.Equal(t, 2, docs.got.Sides)
	assert.Len(t, docs.got.Lines, 2)
	assert.Equal(t, 2026, docs.got.IssuedAt.Year())
}

func TestQuoteSheetPDF(t *testing.T) {
	docs := &stubDocuments{}
	qc := newTestQuoteController(docs)

	rec := httptest.NewRecorder()
	qc.QuoteSheet(rec, httptest.NewRequest(http.MethodPost, "/pricing/quote-sheet?format=PDF", strings.NewReader(quoteBody)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), docs.got.Number+".pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestQuoteSheetErrors(t *testing.T) {
	t.Run("unsupported format", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestQuoteController(&stubDocuments{}).QuoteSheet(rec,
			httptest.NewRequest(http.MethodPost, "/pricing/quote-sheet?format=docx", strings.NewReader(quoteBody)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("pdf failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestQuoteController(&stubDocuments{pdfErr: errors.New("no chrome")}).QuoteSheet(rec,
			httptest.NewRequest(http.MethodPost, "/pricing/quote-sheet?format=pdf", strings.NewReader(quoteBody)))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error"`)
	})

	t.Run("bad request body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestQuoteController(&stubDocuments{}).QuoteSheet(rec,
			httptest.NewRequest(http.MethodPost, "/pricing/quote-sheet", strings.NewReader(`{"sides":"9"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestQuoteController(&stubDocuments{}).QuoteSheet(rec, httptest.NewRequest(http.MethodGet, "/pricing/quote-sheet", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestQuoteSheetUsesPricingEngine(t *testing.T) {
	calc := &recordingCalculator{err: errors.New("no price could be calculated")}
	qc := NewQuoteController(NewPricingController(calc, 10, "4+0"), &stubDocuments{})

	rec := httptest.NewRecorder()
	qc.QuoteSheet(rec, httptest.NewRequest(http.MethodPost, "/pricing/quote-sheet", strings.NewReader(quoteBody)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "flyer", calc.got.ProductID)
	assert.Contains(t, rec.Body.String(), "no price could be calculated")
}
