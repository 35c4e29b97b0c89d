package admin

// ReservationStatus is the backend's reservation state value.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pendiente"
	StatusConfirmed ReservationStatus = "confirmada"
	StatusCompleted ReservationStatus = "completada"
	StatusCancelled ReservationStatus = "cancelada"
	StatusNoShow    ReservationStatus = "no_show"
)

// StatusFilterAll selects every reservation.
const StatusFilterAll = "all"

// KnownStatuses lists the enumeration in display order.
var KnownStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// StatusStyle is the visual treatment of a status.
type StatusStyle struct {
	Color string `json:"color"`
	Badge string `json:"badge"`
}

// NeutralStyle is used for no-shows and any unknown status value.
var NeutralStyle = StatusStyle{Color: "#6b7280", Badge: "badge-gray"}

var statusStyles = map[ReservationStatus]StatusStyle{
	StatusPending:   {Color: "#f59e0b", Badge: "badge-warning"},
	StatusConfirmed: {Color: "#10b981", Badge: "badge-success"},
	StatusCompleted: {Color: "#3b82f6", Badge: "badge-info"},
	StatusCancelled: {Color: "#ef4444", Badge: "badge-error"},
	StatusNoShow:    NeutralStyle,
}

// Known reports whether the status is part of the enumeration.
func (s ReservationStatus) Known() bool {
	_, ok := statusStyles[s]
	return ok
}

// StyleFor maps a raw status value to its style, neutral when unknown.
func StyleFor(status string) StatusStyle {
	if style, ok := statusStyles[ReservationStatus(status)]; ok {
		return style
	}
	return NeutralStyle
}

// StatusColor returns the hex colour for a raw status value.
func StatusColor(status string) string { return StyleFor(status).Color }

// StatusBadge returns the badge class for a raw status value.
func StatusBadge(status string) string { return StyleFor(status).Badge }

// TodayBadge is the reduced palette of the today view: confirmed is green,
// everything else is highlighted as pending.
func TodayBadge(status string) string {
	if ReservationStatus(status) == StatusConfirmed {
		return "badge-success"
	}
	return "badge-warning"
}

// NormalizeStatusFilter maps an empty selection (or the legacy "todas") to "all".
// Any other value is kept and filtered by equality.
func NormalizeStatusFilter(filter string) string {
	if filter == "" || filter == "todas" {
		return StatusFilterAll
	}
	return filter
}
