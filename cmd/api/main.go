package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/staffdesk/staffdesk-backend-go/internal/config"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	appHTTP "github.com/staffdesk/staffdesk-backend-go/internal/handler/http"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/middleware"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/jwt"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/oauth"
	"github.com/staffdesk/staffdesk-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffdesk/staffdesk-backend-go/internal/service/attendance"
	auditService "github.com/staffdesk/staffdesk-backend-go/internal/service/audit"
	authService "github.com/staffdesk/staffdesk-backend-go/internal/service/auth"
	customerService "github.com/staffdesk/staffdesk-backend-go/internal/service/customer"
	employeeService "github.com/staffdesk/staffdesk-backend-go/internal/service/employee"
	identityService "github.com/staffdesk/staffdesk-backend-go/internal/service/identity"
	masterService "github.com/staffdesk/staffdesk-backend-go/internal/service/master"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	// The role catalog must be exhaustive and closed before anything can
	// authenticate against it.
	if err := identity.ValidateCatalog(); err != nil {
		log.Fatal("Invalid permission catalog: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	identityRepo := postgresql.NewIdentityRepository(db)
	customerRepo := postgresql.NewCustomerRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled {
		googleService = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}

	authSvc := authService.NewAuthService(identityRepo, jwtService, auditRepo)
	identitySvc := identityService.NewIdentityService(identityRepo, auditRepo)
	customerSvc := customerService.NewCustomerService(customerRepo, identityRepo, auditRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, identityRepo, auditRepo)
	departmentSvc := masterService.NewDepartmentService(departmentRepo, auditRepo)
	positionSvc := masterService.NewPositionService(positionRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, identityRepo, auditRepo)
	auditSvc := auditService.NewAuditService(auditRepo)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		User:       appHTTP.NewUserHandler(identitySvc),
		Customer:   appHTTP.NewCustomerHandler(customerSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Master:     appHTTP.NewMasterHandler(departmentSvc, positionSvc),
		Audit:      appHTTP.NewAuditHandler(auditSvc),
	}

	permissionGuard := middleware.NewPermissionGuard(auditRepo)
	router := appHTTP.NewRouter(jwtService, permissionGuard, handlers, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
