package factory

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/mrussa/order-insights/internal/order"
)

const (
	manualPrefix      = "MAN-"
	manualIDSpace     = 10000
	manualCodeSpace   = 1000
	placedAtLayout    = "2006-01-02 15:04:05"
	notApplicable     = "N/A"
	defaultEstimate   = "5 dias úteis"
	manualDescription = "Manual Entry"
	manualOperator    = "Manual"
	manualProducer    = "Admin"
	defaultCountry    = "Brasil"
	manualUTMSource   = "manual_entry"
	manualUTMCampaign = "manual"
)

// Factory turns manual-entry forms into complete orders.
//
// Manual ids are "MAN-" plus a number in [0, 9999]. Two manual orders can
// draw the same id; the store will then treat them as one key on Upsert.
// Replace Intn to use a different scheme.
type Factory struct {
	Now  func() time.Time
	Intn func(n int) int
}

func New() *Factory {
	return &Factory{
		Now:  time.Now,
		Intn: rand.Intn,
	}
}

// CreateFromForm builds a new order with synthesized id, timestamps and
// manual-entry attribution.
func (f *Factory) CreateFromForm(in FormInput) (order.Order, error) {
	price, err := in.validate()
	if err != nil {
		return order.Order{}, err
	}
	in = in.trimmed()

	return order.Order{
		Customer:          in.customer(defaultCountry),
		OrderID:           manualPrefix + strconv.Itoa(f.Intn(manualIDSpace)),
		PlacedAt:          f.Now().UTC().Format(placedAtLayout),
		DeliveredOn:       notApplicable,
		DeliveredAt:       notApplicable,
		DeliveryEstimate:  defaultEstimate,
		Status:            in.Status,
		StatusDescription: manualDescription,
		Quantity:          in.Quantity,
		FinalPrice:        price,
		FirstOrder:        true,
		Products: order.Products{
			Main: order.MainProduct{
				Name:       in.ProductName,
				Code:       manualPrefix + strconv.Itoa(f.Intn(manualCodeSpace)),
				Quantity:   in.Quantity,
				Variations: []order.Variation{},
			},
		},
		LogisticOperator: manualOperator,
		DeliveryMan:      notApplicable,
		ProducerName:     manualProducer,
		UTM: order.UTM{
			Source:   manualUTMSource,
			Campaign: manualUTMCampaign,
		},
	}, nil
}

// ApplyEdit overwrites the form-editable fields of prev. Identity, timing,
// delivery labels, attribution and everything else carry over unchanged.
func (f *Factory) ApplyEdit(prev order.Order, in FormInput) (order.Order, error) {
	price, err := in.validate()
	if err != nil {
		return order.Order{}, err
	}
	in = in.trimmed()

	next := prev
	next.Customer = in.customer(prev.Country)
	next.Status = in.Status
	next.Quantity = in.Quantity
	next.FinalPrice = price
	next.Products.Main.Name = in.ProductName
	next.Products.Main.Quantity = in.Quantity
	if prev.Products.Main.Variations != nil {
		next.Products.Main.Variations = append([]order.Variation(nil), prev.Products.Main.Variations...)
	}
	return next, nil
}

func (in FormInput) customer(country string) order.Customer {
	return order.Customer{
		Name:     in.Name,
		Email:    in.Email,
		Document: in.Document,
		Phone:    in.Phone,
		Address: order.Address{
			ZipCode:  in.ZipCode,
			Street:   in.Street,
			Number:   in.Number,
			District: in.District,
			City:     in.City,
			State:    strings.ToUpper(in.State),
			Country:  country,
		},
	}
}
