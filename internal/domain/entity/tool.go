package entity

type ToolName string

const (
	ToolVisualSearch ToolName = "search_products_visual"
	ToolNavigate     ToolName = "open_browser_to_url"
	ToolAddToCart    ToolName = "click_add_to_cart"
)

func (t ToolName) String() string {
	return string(t)
}
