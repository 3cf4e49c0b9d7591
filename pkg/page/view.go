package page

const (
	Title    = "🏭 Intellica"
	Subtitle = "AI-Powered Sənaye Optimallaşma Platforması"

	statusLabel = "Backend Status: "
)

// Card is one static feature card.
type Card struct {
	Title       string
	Description string
}

var cards = []Card{
	{Title: "🤖 Anomaliya Detection", Description: "Real-vaxt sensor monitorinqi və anomaliya aşkarlama"},
	{Title: "🔮 Predictive Maintenance", Description: "7 gün qabaqcadan nasazlıq proqnozu"},
	{Title: "📊 Konfiqurasiya Optimallaşdırma", Description: "AI əsaslı avtomatik parametr tövsiyələri"},
	{Title: "👁️ Defekt Detection", Description: "Computer Vision ilə məhsul qusurlarının aşkarlanması"},
}

// Cards returns a copy of the feature cards.
func Cards() []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// View is everything needed to render the page once.
type View struct {
	Title      string
	Subtitle   string
	StatusLine string
	Status     string
	Cards      []Card
}

// Render builds the view from the current status. It never triggers a
// health check.
func (p *Page) Render() View {
	text := p.StatusText()
	return View{
		Title:      Title,
		Subtitle:   Subtitle,
		StatusLine: statusLabel + text,
		Status:     text,
		Cards:      Cards(),
	}
}
