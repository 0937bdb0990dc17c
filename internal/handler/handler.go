package handler

import "unite-dashboard/internal/service"

type Handlers struct {
	Request      *RequestHandler
	Event        *EventHandler
	Notification *NotificationHandler
	Reference    *ReferenceHandler
	Calendar     *CalendarHandler
	Refresh      *RefreshHandler
	Audit        *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Request:      NewRequestHandler(services.Request, services.Audit),
		Event:        NewEventHandler(services.Event),
		Notification: NewNotificationHandler(services.Notification),
		Reference:    NewReferenceHandler(services.Reference),
		Calendar:     NewCalendarHandler(services.Calendar),
		Refresh:      NewRefreshHandler(services.Refresh),
		Audit:        NewAuditHandler(services.Audit),
	}
}
