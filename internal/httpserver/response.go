package httpserver

import (
	"optic-storefront/internal/domain"
)

type productResponse struct {
	ID             string            `json:"id"`
	Key            string            `json:"key,omitempty"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Price          string            `json:"price"`
	Currency       string            `json:"currency"`
	Category       string            `json:"category"`
	Image          string            `json:"image"`
	Images         []string          `json:"images,omitempty"`
	IsNew          bool              `json:"isNew"`
	Rating         float64           `json:"rating,omitempty"`
	ReviewCount    int               `json:"reviewCount,omitempty"`
	Features       []string          `json:"features,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	InStock        bool              `json:"inStock"`
}

type cartItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image,omitempty"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

type cartResponse struct {
	Items      []cartItemResponse `json:"items"`
	TotalItems int                `json:"totalItems"`
	TotalPrice string             `json:"totalPrice"`
	Currency   string             `json:"currency"`
}

type quoteResponse struct {
	Subtotal              string `json:"subtotal"`
	Shipping              string `json:"shipping"`
	Tax                   string `json:"tax"`
	Total                 string `json:"total"`
	FreeShipping          bool   `json:"freeShipping"`
	FreeShippingRemaining string `json:"freeShippingRemaining"`
	Currency              string `json:"currency"`
}

type orderResponse struct {
	ID       string             `json:"id"`
	Message  string             `json:"message"`
	URL      string             `json:"url"`
	Items    []cartItemResponse `json:"items"`
	Quote    quoteResponse      `json:"quote"`
	Redirect string             `json:"redirect"`
}

type reviewsResponse struct {
	Reviews       []domain.Review `json:"reviews"`
	Count         int             `json:"count"`
	AverageRating float64         `json:"averageRating"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Key:            p.Key,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.StringFixed(2),
		Currency:       p.Currency,
		Category:       p.Category,
		Image:          p.Image,
		Images:         p.Images,
		IsNew:          p.IsNew,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Features:       p.Features,
		Specifications: p.Specifications,
		InStock:        p.InStock,
	}
}

func toProductList(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toCartItems(items []domain.CartItem) []cartItemResponse {
	out := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, cartItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price.StringFixed(2),
			Image:    item.Image,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}
	return out
}

func toCartResponse(cart domain.Cart) cartResponse {
	return cartResponse{
		Items:      toCartItems(cart.Items),
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice().StringFixed(2),
		Currency:   domain.DefaultCurrency.String(),
	}
}

func toQuoteResponse(q domain.Quote) quoteResponse {
	return quoteResponse{
		Subtotal:              q.Subtotal.StringFixed(2),
		Shipping:              q.Shipping.StringFixed(2),
		Tax:                   q.Tax.StringFixed(2),
		Total:                 q.Total.StringFixed(2),
		FreeShipping:          q.FreeShipping,
		FreeShippingRemaining: q.FreeShippingRemaining.StringFixed(2),
		Currency:              q.Currency,
	}
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:       o.ID,
		Message:  o.Message,
		URL:      o.URL,
		Items:    toCartItems(o.Items),
		Quote:    toQuoteResponse(o.Quote),
		Redirect: "/shop",
	}
}

func toReviewsResponse(reviews []domain.Review) reviewsResponse {
	resp := reviewsResponse{Reviews: reviews, Count: len(reviews)}
	if resp.Reviews == nil {
		resp.Reviews = []domain.Review{}
	}
	if len(reviews) == 0 {
		return resp
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	resp.AverageRating = float64(sum) / float64(len(reviews))
	return resp
}
