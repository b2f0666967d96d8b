package appointment

import (
	"venue-booking-api/internal/core/auth"
	"venue-booking-api/internal/domain"
)

// CheckTransition 状态变更规则：
// 终态不可再变；非管理员只能取消自己的预约。
func CheckTransition(p *auth.Principal, a *domain.Appointment, to domain.AppointmentStatus) error {
	if !to.Valid() {
		return domain.FieldError("status", "must be one of: pending, confirmed, cancelled, completed")
	}
	if !auth.CanModify(p, a.UserID) {
		return domain.Forbidden("you can only modify your own appointments")
	}
	if a.Status.Terminal() {
		return domain.TerminalState("appointment is already %s", a.Status)
	}
	if !p.IsAdmin() && to != domain.StatusCancelled {
		return domain.Forbidden("only admins can set status to %s", to)
	}
	return nil
}

// CheckEditable 字段修改：本人或管理员，且未进入终态
func CheckEditable(p *auth.Principal, a *domain.Appointment) error {
	if !auth.CanModify(p, a.UserID) {
		return domain.Forbidden("you can only modify your own appointments")
	}
	if a.Status.Terminal() {
		return domain.TerminalState("cannot edit a %s appointment", a.Status)
	}
	return nil
}
