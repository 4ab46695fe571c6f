package entity

import "strings"

// Client cliente tal como lo devuelve la búsqueda de la intranet. Al seleccionarlo en un
// borrador se copia completo (snapshot) y ya no se vuelve a consultar.
type Client struct {
	NIT             string `json:"nit"`
	Name            string `json:"name"`
	Phone           string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	PaymentTermDays int    `json:"payment_term_days"`
	SellerCode      string `json:"seller_code,omitempty"` // cédula del asesor asignado
}

// HasSeller indica si el cliente tiene asesor asignado en la intranet.
func (c Client) HasSeller() bool {
	return strings.TrimSpace(c.SellerCode) != ""
}
