package order

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	StatusScheduled = "Agendado"
	StatusShipped   = "Enviado"
	StatusDelivered = "Entregue"
	StatusCanceled  = "Cancelado"
	StatusFailed    = "Falha na Entrega"
)

// KnownStatuses lists the statuses the platform emits. Status is an open set:
// anything else is stored and aggregated verbatim.
var KnownStatuses = []string{
	StatusScheduled,
	StatusShipped,
	StatusDelivered,
	StatusCanceled,
	StatusFailed,
}

// Order mirrors the platform payload. The order identifier travels as
// date_order upstream.
type Order struct {
	Customer

	OrderID          string  `json:"date_order"`
	PlacedAt         string  `json:"date_order_day"`
	DeliveredOn      string  `json:"date_delivery"`
	DeliveredAt      string  `json:"date_delivery_day"`
	DeliveryEstimate string  `json:"delivery_estimate"`
	OrderNumber      *string `json:"order_number"`

	Status            string `json:"order_status"`
	StatusDescription string `json:"order_status_description"`
	Quantity          int    `json:"order_quantity"`
	FinalPrice        string `json:"order_final_price"`
	SecondOrder       bool   `json:"second_order"`
	FirstOrder        bool   `json:"first_order"`

	Products Products `json:"products"`

	LogisticOperator string `json:"logistic_operator"`
	DeliveryMan      string `json:"delivery_man"`
	DeliveryManPhone string `json:"delivery_man_phone"`

	ProducerName  string  `json:"producer_name"`
	AffiliateName *string `json:"affiliate_name"`
	Commission    float64 `json:"commission"`
	UTM           UTM     `json:"utm"`
}

type Customer struct {
	Name     string `json:"client_name"`
	Email    string `json:"client_email"`
	Document string `json:"client_document"`
	Phone    string `json:"client_phone"`
	Address
}

type Address struct {
	ZipCode  string `json:"client_zip_code"`
	Street   string `json:"client_address"`
	Number   string `json:"client_address_number"`
	District string `json:"client_address_district"`
	City     string `json:"client_address_city"`
	State    string `json:"client_address_state"`
	Country  string `json:"client_address_country"`
}

type Products struct {
	Main MainProduct `json:"main"`
}

type MainProduct struct {
	Name       string      `json:"product_name"`
	Code       string      `json:"product_code"`
	Quantity   int         `json:"quantity"`
	Variations []Variation `json:"variations"`
}

type Variation struct {
	Name           string `json:"product_name"`
	VariationNames string `json:"variation_names"`
	Code           string `json:"product_code"`
	Quantity       int    `json:"quantity"`
}

// UTM holds attribution tags. An empty string means "not set"; display labels
// such as "Direct" are applied by the analytics views only.
type UTM struct {
	Source   string `json:"utm_source"`
	Content  string `json:"utm_content"`
	Term     string `json:"utm_term"`
	Medium   string `json:"utm_medium"`
	ID       string `json:"utm_id"`
	Campaign string `json:"utm_campaign"`
}

// Revenue returns the parsed final price. Malformed, out of range, empty and
// negative prices count as zero.
func (o Order) Revenue() decimal.Decimal {
	return Amount(o.FinalPrice)
}

// Day is the date token of PlacedAt, i.e. everything before the time part.
func (o Order) Day() string {
	day, _, _ := strings.Cut(strings.TrimSpace(o.PlacedAt), " ")
	return day
}

func Amount(s string) decimal.Decimal {
	d, err := ParsePrice(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ErrPriceRange marks prices that are too long or use exponent notation.
// Neither can come from the platform, and a large exponent would make every
// sum over the record allocate its full digit expansion.
var ErrPriceRange = errors.New("price out of range")

const maxPriceLen = 32

// ParsePrice accepts plain decimal notation of at most 32 characters.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxPriceLen || strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, ErrPriceRange
	}
	return decimal.NewFromString(s)
}

// FormatPrice renders a price the way it is stored: exactly two decimals.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
