package domain

import "time"

// DeliveryDateLayout renders dates as "Tuesday, June 4".
const DeliveryDateLayout = "Monday, January 2"

// DeliveryOption is a shipping choice offered for every cart line.
type DeliveryOption struct {
	ID           string
	DeliveryDays int
	PriceCents   int64
}

// IsFree reports whether the option adds no shipping cost.
func (o DeliveryOption) IsFree() bool {
	return o.PriceCents == 0
}

// DeliveryDate returns ref shifted forward by the option's delivery days.
func DeliveryDate(option DeliveryOption, ref time.Time) time.Time {
	return ref.AddDate(0, 0, option.DeliveryDays)
}

// FormatDeliveryDate renders the delivery date for option relative to ref.
func FormatDeliveryDate(option DeliveryOption, ref time.Time) string {
	return DeliveryDate(option, ref).Format(DeliveryDateLayout)
}
