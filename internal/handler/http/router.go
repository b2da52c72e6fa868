package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/middleware"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Customer   CustomerHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Master     MasterHandler
	Audit      AuditHandler
}

func NewRouter(jwtService jwt.Service, pg *middleware.PermissionGuard, h Handlers, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffdesk"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
				r.Get("/landing", h.Auth.Landing)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/customers", func(r chi.Router) {
				canView := pg.RequireAny(
					identity.PermissionCRMViewAllCustomers,
					identity.PermissionCRMViewOwnCustomers,
				)

				r.With(canView).Get("/", h.Customer.List)
				r.With(canView).Get("/export", h.Customer.Export)
				r.With(pg.RequireAny(identity.PermissionCRMCreateCustomer)).Post("/", h.Customer.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.With(canView).Get("/", h.Customer.Get)
					r.With(pg.RequireAny(identity.PermissionCRMEditCustomer)).Put("/", h.Customer.Update)
					r.With(pg.RequireAny(identity.PermissionCRMDeleteCustomer)).Delete("/", h.Customer.Delete)
					r.With(pg.RequireAny(identity.PermissionCRMTransferCustomer)).Post("/transfer", h.Customer.Transfer)
					r.With(pg.RequireAny(identity.PermissionCRMViewCustomerHistory)).Get("/history", h.Customer.History)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				canView := pg.RequireAny(
					identity.PermissionHRViewAllEmployees,
					identity.PermissionHRViewDepartmentEmployees,
				)

				r.With(canView).Get("/", h.Employee.List)
				r.With(pg.RequireAny(identity.PermissionHRViewAllEmployees)).Get("/export", h.Employee.Export)
				r.With(pg.RequireAny(identity.PermissionHRCreateEmployee)).Post("/", h.Employee.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.With(canView).Get("/", h.Employee.Get)
					r.With(pg.RequireAny(identity.PermissionHREditEmployee)).Put("/", h.Employee.Update)
					r.With(pg.RequireAny(identity.PermissionHRDeleteEmployee)).Delete("/", h.Employee.Delete)
					r.With(pg.RequireAll(
						identity.PermissionHRViewSalary,
						identity.PermissionHREditSalary,
					)).Put("/salary", h.Employee.AdjustSalary)
				})
			})

			r.Route("/master", func(r chi.Router) {
				canView := pg.RequireAny(
					identity.PermissionHRViewAllEmployees,
					identity.PermissionHRViewDepartmentEmployees,
				)
				canManage := pg.RequireAny(identity.PermissionAdminManageUsers)

				r.Route("/departments", func(r chi.Router) {
					r.With(canView).Get("/", h.Master.ListDepartments)
					r.With(canView).Get("/{id}", h.Master.GetDepartment)
					r.With(canManage).Post("/", h.Master.CreateDepartment)
					r.With(canManage).Put("/{id}", h.Master.UpdateDepartment)
					r.With(canManage).Delete("/{id}", h.Master.DeleteDepartment)
				})

				r.Route("/positions", func(r chi.Router) {
					r.With(canView).Get("/", h.Master.ListPositions)
					r.With(canView).Get("/{id}", h.Master.GetPosition)
					r.With(canManage).Post("/", h.Master.CreatePosition)
					r.With(canManage).Put("/{id}", h.Master.UpdatePosition)
					r.With(canManage).Delete("/{id}", h.Master.DeletePosition)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(pg.RequireAny(identity.PermissionAttendanceCheckin)).Post("/checkin", h.Attendance.CheckIn)
				r.With(pg.RequireAny(identity.PermissionAttendanceCheckout)).Post("/checkout", h.Attendance.CheckOut)
				r.With(pg.RequireAny(
					identity.PermissionAttendanceViewOwn,
					identity.PermissionAttendanceViewTeam,
					identity.PermissionAttendanceViewDepartment,
					identity.PermissionAttendanceViewAll,
				)).Get("/", h.Attendance.List)
				r.With(pg.RequireAny(identity.PermissionAttendanceApprove)).Post("/{id}/approve", h.Attendance.Approve)
				r.With(pg.RequireAny(identity.PermissionAttendanceEdit)).Put("/{id}", h.Attendance.Correct)
			})

			r.Route("/users", func(r chi.Router) {
				canManageUsers := pg.RequireAny(identity.PermissionAdminManageUsers)
				canManageRoles := pg.RequireAny(identity.PermissionAdminManageRoles)

				r.With(canManageUsers).Get("/", h.User.List)
				r.With(canManageUsers).Post("/", h.User.Create)
				r.With(canManageUsers).Get("/{id}", h.User.Get)
				r.With(canManageUsers).Patch("/{id}/active", h.User.SetActive)
				r.With(canManageRoles).Put("/{id}/role", h.User.UpdateRole)
				r.With(canManageRoles).Put("/{id}/permissions", h.User.UpdatePermissions)
			})

			r.With(pg.RequireAny(identity.PermissionAdminViewAuditLog)).Get("/audit-logs", h.Audit.List)
		})
	})
	return r
}
