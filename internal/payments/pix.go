package payments

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

// PixCharge é o resultado de uma cobrança Pix criada no Mercado Pago.
// O código copia-e-cola e o QR code vão direto para o recibo.
type PixCharge struct {
	ID           int    `json:"id"`
	Status       string `json:"status"`
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url"`
}

// Charger cria cobranças Pix. A confirmação do recebimento é sempre da
// profissional; a cobrança online é um facilitador opcional.
type Charger interface {
	CreatePix(ctx context.Context, amount float64, description string) (*PixCharge, error)
}

type MercadoPago struct {
	client     payment.Client
	payerEmail string
}

// NewMercadoPago monta o cliente a partir do access token. Token vazio
// desabilita a integração (retorna nil, sem erro).
func NewMercadoPago(accessToken, payerEmail string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, nil
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("configurando mercado pago: %w", err)
	}
	return &MercadoPago{
		client:     payment.NewClient(cfg),
		payerEmail: payerEmail,
	}, nil
}

func (m *MercadoPago) CreatePix(ctx context.Context, amount float64, description string) (*PixCharge, error) {
	req := payment.Request{
		TransactionAmount: amount,
		Description:       description,
		PaymentMethodID:   "pix",
		Payer: &payment.PayerRequest{
			Email: m.payerEmail,
		},
	}

	resp, err := m.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("criando cobrança pix: %w", err)
	}

	charge := &PixCharge{
		ID:     resp.ID,
		Status: resp.Status,
	}
	if resp.PointOfInteraction.TransactionData.QRCode != "" {
		charge.QRCode = resp.PointOfInteraction.TransactionData.QRCode
		charge.QRCodeBase64 = resp.PointOfInteraction.TransactionData.QRCodeBase64
		charge.TicketURL = resp.PointOfInteraction.TransactionData.TicketURL
	}
	return charge, nil
}
