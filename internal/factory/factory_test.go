package factory_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mrussa/order-insights/internal/factory"
	"github.com/mrussa/order-insights/internal/order"
)

func fixedFactory(n int) *factory.Factory {
	return &factory.Factory{
		Now:  func() time.Time { return time.Date(2024, 3, 5, 17, 4, 9, 0, time.UTC) },
		Intn: func(int) int { return n },
	}
}

func validForm() factory.FormInput {
	return factory.FormInput{
		Name:        "João Silva",
		Email:       "joao@email.com",
		Document:    "123.456.789-00",
		Phone:       "(11) 99999-9999",
		ZipCode:     "01000-000",
		Street:      "Av. Paulista",
		Number:      "1000",
		District:    "Bela Vista",
		City:        "São Paulo",
		State:       "SP",
		ProductName: "Kit Premium",
		Price:       "19.9",
		Quantity:    2,
		Status:      order.StatusScheduled,
	}
}

func TestCreateFromForm_Defaults(t *testing.T) {
	f := fixedFactory(42)

	o, err := f.CreateFromForm(validForm())
	require.NoError(t, err)

	require.Equal(t, "MAN-42", o.OrderID)
	require.Equal(t, "2024-03-05 17:04:09", o.PlacedAt)
	require.Equal(t, "N/A", o.DeliveredAt)
	require.Equal(t, "N/A", o.DeliveredOn)
	require.Equal(t, "5 dias úteis", o.DeliveryEstimate)
	require.Equal(t, "19.90", o.FinalPrice)
	require.Equal(t, 2, o.Quantity)
	require.Equal(t, 2, o.Products.Main.Quantity)
	require.Equal(t, "Kit Premium", o.Products.Main.Name)
	require.Equal(t, "MAN-42", o.Products.Main.Code)
	require.NotNil(t, o.Products.Main.Variations)
	require.Empty(t, o.Products.Main.Variations)
	require.Equal(t, order.StatusScheduled, o.Status)
	require.Equal(t, "Manual Entry", o.StatusDescription)
	require.Equal(t, "Brasil", o.Country)
	require.Equal(t, "São Paulo", o.City)
	require.True(t, o.FirstOrder)
	require.False(t, o.SecondOrder)
	require.Equal(t, "Manual", o.LogisticOperator)
	require.Equal(t, "Admin", o.ProducerName)
	require.Nil(t, o.AffiliateName)
	require.Zero(t, o.Commission)
	require.Equal(t, order.UTM{Source: "manual_entry", Campaign: "manual"}, o.UTM)
	require.NoError(t, order.Validate(&o))
}

func TestCreateFromForm_IDRange(t *testing.T) {
	var bounds []int
	f := factory.New()
	f.Intn = func(n int) int {
		bounds = append(bounds, n)
		return n - 1
	}

	o, err := f.CreateFromForm(validForm())
	require.NoError(t, err)
	require.Equal(t, "MAN-9999", o.OrderID)
	require.Equal(t, []int{10000, 1000}, bounds)
}

func TestCreateFromForm_PriceFormatting(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"19.9", "19.90"},
		{"20", "20.00"},
		{" 7.5 ", "7.50"},
		{"0", "0.00"},
		{"12.345", "12.35"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			in := validForm()
			in.Price = tt.in
			o, err := fixedFactory(1).CreateFromForm(in)
			require.NoError(t, err)
			require.Equal(t, tt.want, o.FinalPrice)
		})
	}
}

func TestCreateFromForm_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*factory.FormInput)
		field string
	}{
		{"price not a number", func(in *factory.FormInput) { in.Price = "abc" }, "product_price"},
		{"price NaN", func(in *factory.FormInput) { in.Price = "NaN" }, "product_price"},
		{"price negative", func(in *factory.FormInput) { in.Price = "-1" }, "product_price"},
		{"price empty", func(in *factory.FormInput) { in.Price = "  " }, "product_price"},
		{"name missing", func(in *factory.FormInput) { in.Name = "" }, "client_name"},
		{"bad email", func(in *factory.FormInput) { in.Email = "nope" }, "client_email"},
		{"state too long", func(in *factory.FormInput) { in.State = "SPX" }, "client_address_state"},
		{"state unknown", func(in *factory.FormInput) { in.State = "ZZ" }, "client_address_state"},
		{"price exponent", func(in *factory.FormInput) { in.Price = "1e20000000" }, "product_price"},
		{"price too long", func(in *factory.FormInput) { in.Price = "1" + strings.Repeat("0", 40) }, "product_price"},
		{"city missing", func(in *factory.FormInput) { in.City = "" }, "client_address_city"},
		{"zero quantity", func(in *factory.FormInput) { in.Quantity = 0 }, "quantity"},
		{"status missing", func(in *factory.FormInput) { in.Status = "" }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validForm()
			tt.edit(&in)

			_, err := fixedFactory(1).CreateFromForm(in)
			require.Error(t, err)
			require.ErrorIs(t, err, factory.ErrValidation)

			var verr *factory.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreateFromForm_Reasons(t *testing.T) {
	in := validForm()
	in.Price = "1e20000000"
	_, err := fixedFactory(1).CreateFromForm(in)
	require.EqualError(t, err, "field product_price: out of range")

	in = validForm()
	in.State = "zz"
	_, err = fixedFactory(1).CreateFromForm(in)
	require.EqualError(t, err, "field client_address_state: unknown state code")

	in = validForm()
	in.State = " rj "
	o, err := fixedFactory(1).CreateFromForm(in)
	require.NoError(t, err)
	require.Equal(t, "RJ", o.State)
}

func TestCreateFromForm_UnknownStatusAccepted(t *testing.T) {
	in := validForm()
	in.Status = "Devolvido"
	o, err := fixedFactory(1).CreateFromForm(in)
	require.NoError(t, err)
	require.Equal(t, "Devolvido", o.Status)
}

func existing() order.Order {
	affiliate := "Parceiro X"
	number := "N-77"
	return order.Order{
		Customer: order.Customer{
			Name:  "Cliente 1",
			Email: "cliente1@example.com",
			Address: order.Address{
				City:    "Curitiba",
				State:   "PR",
				Country: "Brasil",
			},
		},
		OrderID:           "ORD-1000",
		PlacedAt:          "2023-11-20 14:03:11",
		DeliveredOn:       "terça-feira",
		DeliveredAt:       "2023-11-22 00:00:00",
		DeliveryEstimate:  "quarta-feira",
		OrderNumber:       &number,
		Status:            order.StatusShipped,
		StatusDescription: "em rota",
		Quantity:          1,
		FinalPrice:        "50.00",
		SecondOrder:       true,
		Products: order.Products{Main: order.MainProduct{
			Name:     "Pote Genérico",
			Code:     "PROD-0",
			Quantity: 1,
			Variations: []order.Variation{
				{Name: "Variação Padrão", VariationNames: "Cor: Padrão", Code: "VAR-0", Quantity: 3},
			},
		}},
		LogisticOperator: "Loggi",
		DeliveryMan:      "Entregador Padrão",
		ProducerName:     "Minha Loja",
		AffiliateName:    &affiliate,
		Commission:       5,
		UTM:              order.UTM{Source: "google", Medium: "cpc", Campaign: "black_friday", Term: "t", Content: "c", ID: "id"},
	}
}

func TestApplyEdit_OverwritesEditableFields(t *testing.T) {
	prev := existing()
	in := validForm()
	in.Quantity = 4
	in.Price = "99.5"
	in.Status = order.StatusDelivered

	got, err := fixedFactory(7).ApplyEdit(prev, in)
	require.NoError(t, err)

	require.Equal(t, "João Silva", got.Name)
	require.Equal(t, "joao@email.com", got.Email)
	require.Equal(t, "123.456.789-00", got.Document)
	require.Equal(t, "São Paulo", got.City)
	require.Equal(t, "SP", got.State)
	require.Equal(t, "Av. Paulista", got.Street)
	require.Equal(t, order.StatusDelivered, got.Status)
	require.Equal(t, 4, got.Quantity)
	require.Equal(t, "99.50", got.FinalPrice)
	require.Equal(t, "Kit Premium", got.Products.Main.Name)
	require.Equal(t, 4, got.Products.Main.Quantity)
}

func TestApplyEdit_PreservesIdentityTimingAndAttribution(t *testing.T) {
	prev := existing()

	got, err := fixedFactory(7).ApplyEdit(prev, validForm())
	require.NoError(t, err)

	require.Equal(t, prev.OrderID, got.OrderID)
	require.Equal(t, prev.PlacedAt, got.PlacedAt)
	require.Equal(t, prev.DeliveredAt, got.DeliveredAt)
	require.Equal(t, prev.DeliveredOn, got.DeliveredOn)
	require.Equal(t, prev.DeliveryEstimate, got.DeliveryEstimate)
	require.Equal(t, prev.UTM, got.UTM)
	require.Equal(t, prev.ProducerName, got.ProducerName)
	require.Equal(t, prev.AffiliateName, got.AffiliateName)
	require.Equal(t, prev.Commission, got.Commission)
	require.Equal(t, prev.Country, got.Country)
	require.Equal(t, prev.LogisticOperator, got.LogisticOperator)
	require.Equal(t, prev.StatusDescription, got.StatusDescription)
	require.Equal(t, prev.OrderNumber, got.OrderNumber)
	require.Equal(t, prev.SecondOrder, got.SecondOrder)
	require.Equal(t, prev.Products.Main.Code, got.Products.Main.Code)
	require.Equal(t, prev.Products.Main.Variations, got.Products.Main.Variations)
}

func TestApplyEdit_DoesNotAliasPrevious(t *testing.T) {
	prev := existing()
	got, err := fixedFactory(7).ApplyEdit(prev, validForm())
	require.NoError(t, err)

	got.Products.Main.Variations[0].Quantity = 99
	require.Equal(t, 3, prev.Products.Main.Variations[0].Quantity)
	require.Equal(t, "Pote Genérico", prev.Products.Main.Name)
}

func TestApplyEdit_InvalidPriceRejected(t *testing.T) {
	in := validForm()
	in.Price = "dez"
	_, err := fixedFactory(7).ApplyEdit(existing(), in)
	require.ErrorIs(t, err, factory.ErrValidation)
}

func TestFormFromOrder_RoundTrip(t *testing.T) {
	prev := existing()
	in := factory.FormFromOrder(prev)
	in.Document = "000"
	in.Phone = "1"
	in.ZipCode = "0"
	in.Street = "Rua"
	in.Number = "1"
	in.District = "Centro"
	in.ProductName = prev.Products.Main.Name

	got, err := fixedFactory(7).ApplyEdit(prev, in)
	require.NoError(t, err)
	require.Equal(t, prev.FinalPrice, got.FinalPrice)
	require.Equal(t, prev.Status, got.Status)
	require.Equal(t, prev.Quantity, got.Quantity)
}
