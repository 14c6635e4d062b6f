package utils

import (
	"fmt"
	"time"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

// Actions d'audit produit
const (
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

type WebhookPayload struct {
	Embeds []Embed `json:"embeds"`
}

type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []EmbedField `json:"fields"`
	Timestamp   string       `json:"timestamp"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// BuildProductEmbed formate la notification d'audit d'une mutation produit
func BuildProductEmbed(action string, p models.Product, actor models.User) WebhookPayload {
	emoji := "📦"
	text := "Azione Prodotto"
	color := 0x7289da

	switch action {
	case ActionAdd:
		emoji, text, color = "✅", "Prodotto Aggiunto", 0x00ff00
	case ActionEdit:
		emoji, text, color = "✏️", "Prodotto Modificato", 0xffa500
	case ActionDelete:
		emoji, text, color = "🗑️", "Prodotto Eliminato", 0xff0000
	}

	productType := p.Type
	if productType == "" {
		productType = "N/A"
	}

	return WebhookPayload{
		Embeds: []Embed{{
			Title:       emoji + " " + text,
			Description: fmt.Sprintf("Prodotto: **%s**", p.Name),
			Color:       color,
			Fields: []EmbedField{
				{Name: "👤 Utente", Value: actor.DisplayName(), Inline: true},
				{Name: "🆔 ID Prodotto", Value: fmt.Sprintf("%d", p.ID), Inline: true},
				{Name: "💰 Prezzo", Value: fmt.Sprintf("€%g", p.Price), Inline: true},
				{Name: "📝 Tipo", Value: productType, Inline: true},
				{Name: "📄 Descrizione", Value: Truncate(p.Description, 100), Inline: false},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Footer:    &EmbedFooter{Text: "Shjra Maps - Product Logs"},
		}},
	}
}

// BuildLoginEmbed formate la notification de login
func BuildLoginEmbed(user models.User, at time.Time) WebhookPayload {
	return WebhookPayload{
		Embeds: []Embed{{
			Title:       "🔐 Nuovo Login",
			Description: "Un utente ha effettuato il login",
			Color:       0x7289da,
			Fields: []EmbedField{
				{Name: "👤 Username", Value: user.DisplayName(), Inline: true},
				{Name: "🆔 Discord ID", Value: user.ID, Inline: true},
				{Name: "📅 Data e Ora", Value: at.Format("02/01/2006, 15:04:05"), Inline: false},
			},
			Timestamp: at.UTC().Format(time.RFC3339),
		}},
	}
}

// Truncate coupe à max runes avec une ellipse
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
