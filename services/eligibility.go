package services

import (
	"time"

	"github.com/accelconnect/restauration-gateway/models"
)

// ModificationDeadlineHour is the wall-clock hour after which the day's
// order can no longer be modified or cancelled.
const ModificationDeadlineHour = 12

// IsWeekend reports whether an ISO date falls on Saturday or Sunday. The
// date is interpreted in its own calendar terms, never shifted through a
// timezone.
func IsWeekend(dateISO string) bool {
	d, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return false
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBeforeModificationDeadline reports whether the current hour is still
// within the modification window.
func IsBeforeModificationDeadline(nowHour, deadlineHour int) bool {
	return nowHour < deadlineHour
}

// IsTodayOrder compares order date and today's date as plain strings.
func IsTodayOrder(orderDate, today string) bool {
	return orderDate != "" && orderDate == today
}

// CanModify reports whether an order may still be changed: it must be
// confirmed, placed for today, and the deadline must not have passed.
// A nil order is simply not modifiable.
func CanModify(order *models.Order, today string, nowHour int) bool {
	if order == nil {
		return false
	}
	return order.Status == models.OrderStatusConfirmed &&
		IsTodayOrder(order.OrderDate, today) &&
		IsBeforeModificationDeadline(nowHour, ModificationDeadlineHour)
}

// CanCancel follows the same gate as CanModify; the domain uses one
// window for both actions.
func CanCancel(order *models.Order, today string, nowHour int) bool {
	return CanModify(order, today, nowHour)
}

// IsSettlementDay reports whether restaurant payments may be validated on
// the given date. Settlement runs on Fridays only.
func IsSettlementDay(dateISO string) bool {
	d, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return false
	}
	return d.Weekday() == time.Friday
}
