package ai

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash-latest"

// AIService holds the Gemini client, the database connection used to
// snapshot the inventory into the prompt, and the resolved model name.
type AIService struct {
	Client *genai.Client
	DB     *sql.DB
	Model  string
}

// NewAIService initializes the Gemini client. modelName may be empty; the
// legacy "gemini-pro" name is mapped to its current equivalent so old env
// files keep working.
func NewAIService(apiKey, modelName string, db *sql.DB) (*AIService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &AIService{Client: client, DB: db, Model: ResolveModel(modelName)}, nil
}

// ResolveModel maps the configured model name to one the API accepts.
func ResolveModel(modelName string) string {
	modelName = strings.TrimSpace(modelName)
	if modelName == "gemini-pro" {
		return "gemini-1.5-pro-latest"
	}
	if modelName == "" {
		return defaultModel
	}
	return modelName
}

// GenerateResponse answers one free-text question with the current
// inventory snapshot as context. The assistant speaks Indonesian, like
// the staff using it.
func (s *AIService) GenerateResponse(ctx context.Context, userMessage string) (string, error) {
	// 1. Snapshot the inventory for the prompt
	inventory, err := s.inventoryContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load inventory context: %w", err)
	}

	prompt := fmt.Sprintf(`Kamu adalah asisten apoteker yang membantu kasir dan admin apotek.
Kamu punya akses ke database obat berikut:

%s

Tugas kamu:
1. Jawab pertanyaan tentang obat, stok, harga
2. Berikan rekomendasi obat berdasarkan keluhan
3. Ingatkan tentang dosis umum (tapi selalu sarankan konsultasi dokter)
4. Jawab dalam bahasa Indonesia yang ramah dan profesional
5. Jika obat tidak ada di database, katakan tidak tersedia

Pertanyaan user: %s`, inventory, userMessage)

	// 2. Call Gemini
	model := s.Client.GenerativeModel(s.Model)
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	// 3. Extract the text answer
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "Maaf, AI tidak memberikan jawaban.", nil
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		sb.WriteString(fmt.Sprintf("%v", part))
	}
	return sb.String(), nil
}

// inventoryContext renders every medicine as one prompt line.
func (s *AIService) inventoryContext(ctx context.Context) (string, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT name, stock, price, expired_at FROM medicines ORDER BY name`)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var sb strings.Builder
	for rows.Next() {
		var name string
		var stock int
		var price float64
		var expiredAt sql.NullInt64

		if err := rows.Scan(&name, &stock, &price, &expiredAt); err != nil {
			return "", err
		}

		expiry := "Tidak tercatat"
		if expiredAt.Valid {
			expiry = time.UnixMilli(expiredAt.Int64).Format("02/01/2006")
		}

		fmt.Fprintf(&sb, "- %s (Stok: %d unit, Harga: Rp %.0f, Kadaluarsa: %s)\n", name, stock, price, expiry)
	}
	return sb.String(), rows.Err()
}

// ModelHint returns an actionable hint when the error looks like an
// unrecognized model name, so the operator knows which env var to fix.
func ModelHint(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "404") || (strings.Contains(msg, "model") && strings.Contains(msg, "not")) {
		return "Model tidak ditemukan. Coba set GEMINI_MODEL=gemini-1.5-flash-latest lalu restart server."
	}
	return ""
}
