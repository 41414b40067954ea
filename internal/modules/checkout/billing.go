package checkout

import (
	"strings"

	"github.com/saadkhan011/calcrew-frontend/internal/modules/payments"
)

func billingDetails(p DonorProfile) *payments.BillingDetails {
	return &payments.BillingDetails{
		Name:  p.FullName(),
		Email: strings.TrimSpace(p.Email),
		Phone: strings.TrimSpace(p.Phone),
		Address: payments.Address{
			Line1:      strings.TrimSpace(p.Address),
			City:       strings.TrimSpace(p.City),
			State:      strings.TrimSpace(p.State),
			PostalCode: strings.TrimSpace(p.Zip),
			Country:    payments.Country,
		},
	}
}

func userInfo(p DonorProfile) *payments.UserInfo {
	return &payments.UserInfo{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		ZipCode:   p.Zip,
	}
}
