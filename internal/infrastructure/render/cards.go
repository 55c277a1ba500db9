package render

import (
	"bytes"
	"html/template"
	"net/url"

	"shopping-agent/internal/application/port/output"
	"shopping-agent/internal/domain/entity"
)

var _ output.RendererPort = (*CardRenderer)(nil)

// maxCards caps the grid regardless of how many results come back.
const maxCards = 6

const (
	emptyMessage = "No products found."
	errorMessage = "Render error."
)

var cardTemplate = template.Must(template.New("cards").Parse(`<div class='grid-container'>{{range .}}
<div class="card">
	<div class="image-container"><img src="{{.Thumbnail}}" alt="{{.Title}}"></div>
	<div class="meta">
		<div class="title">{{.Title}}</div>
		<div class="price">{{.Price}}</div>
		<div class="store">{{.Source}}</div>
		<button class="buy-btn" onclick="triggerAutoBuy('{{.EncodedLink}}')">Auto-Buy 🤖</button>
	</div>
</div>{{end}}
</div>`))

type card struct {
	Thumbnail   string
	Title       string
	Price       string
	Source      string
	EncodedLink string
}

type CardRenderer struct{}

func NewCardRenderer() *CardRenderer {
	return &CardRenderer{}
}

// Cards emits the product grid fragment: at most 6 cards, items without a
// link never appear. The fragment goes straight into the chat response, so
// failures come back as plain text too.
func (r *CardRenderer) Cards(products []entity.Product) string {
	if len(products) == 0 {
		return emptyMessage
	}

	cards := make([]card, 0, maxCards)
	for _, p := range products {
		if len(cards) >= maxCards {
			break
		}
		if p.Link == "" {
			continue
		}

		title := p.Title
		if title == "" {
			title = "Unknown"
		}
		price := p.Price
		if price == "" {
			price = "Check Site"
		}
		source := p.Source
		if source == "" {
			source = "Web"
		}

		cards = append(cards, card{
			Thumbnail:   p.Thumbnail,
			Title:       title,
			Price:       price,
			Source:      source,
			EncodedLink: url.QueryEscape(p.Link),
		})
	}

	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, cards); err != nil {
		return errorMessage
	}
	return buf.String()
}
