package domain

type Review struct {
	ID      int    `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Rating  int    `json:"rating" yaml:"rating"`
	Date    string `json:"date" yaml:"date"`
	Comment string `json:"comment" yaml:"comment"`
	Product string `json:"product" yaml:"product"`
}

// StoreInfo describes the physical shop and its contact channels. The links are
// opaque: the service hands them out, it never calls them.
type StoreInfo struct {
	Name       string   `json:"name" yaml:"name"`
	Address    string   `json:"address" yaml:"address"`
	Hours      []string `json:"hours" yaml:"hours"`
	Phone      string   `json:"phone" yaml:"phone"`
	WhatsApp   string   `json:"whatsapp" yaml:"whatsapp"`
	Email      string   `json:"email" yaml:"email"`
	Facebook   string   `json:"facebook,omitempty" yaml:"facebook"`
	Instagram  string   `json:"instagram,omitempty" yaml:"instagram"`
	BookingURL string   `json:"bookingUrl,omitempty" yaml:"bookingUrl"`
	MapURL     string   `json:"mapUrl,omitempty" yaml:"mapUrl"`
}
