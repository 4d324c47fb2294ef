package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/crimechain/report-api/api"
	"github.com/crimechain/report-api/api/scheduler"
	"github.com/crimechain/report-api/config"
	"github.com/crimechain/report-api/databases"
	"github.com/crimechain/report-api/evidence"
	"github.com/crimechain/report-api/ledger"
	"github.com/crimechain/report-api/mail"
	"github.com/crimechain/report-api/models"
	"github.com/crimechain/report-api/reports"
)

// App stores the router, db connection and ledger service, so they can be
// reused across requests.
type App struct {
	Router   *mux.Router
	Config   config.Config
	Ledger   ledger.Service
	Jobs     *scheduler.Scheduler
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	issuer := api.NewIssuer(a.Config.JWTSecret)
	nonces := api.NewNonceStore()
	reportDB := databases.NewReportDatabase(a.dbHelper)
	userDB := databases.NewUserDatabase(a.dbHelper)

	var store evidence.Store
	if cloudinaryStore, err := evidence.NewCloudinaryStore(); err != nil {
		// evidence uploads will fail loudly per request instead of at boot
		zap.S().Warnw("cloudinary not configured, evidence uploads disabled", "error", err)
	} else {
		store = cloudinaryStore
	}

	auth := Auth{DB: userDB, Issuer: issuer, Nonces: nonces}
	report := Report{
		RDB:    reportDB,
		UDB:    userDB,
		Ledger: a.Ledger,
		Coordinator: &reports.Coordinator{
			DB:     reportDB,
			Ledger: a.Ledger,
		},
		Reconciler: &reports.Reconciler{
			DB:       reportDB,
			Users:    userDB,
			Ledger:   a.Ledger,
			Notifier: mail.NewMailer(a.Config.BaseURL),
		},
		Evidence: &evidence.Processor{Store: store},
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(60 * time.Second))

	apiCreate.Handle("/auth/register", http.HandlerFunc(auth.RegisterHandler)).Methods("POST")
	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/wallet/nonce", http.HandlerFunc(auth.WalletNonceHandler)).Methods("POST")
	apiCreate.Handle("/auth/wallet/login", http.HandlerFunc(auth.WalletLoginHandler)).Methods("POST")

	authed := api.Middleware(issuer)
	admin := func(h http.HandlerFunc) http.Handler { return authed(api.AdminOnly(h)) }

	apiCreate.Handle("/reports", authed(http.HandlerFunc(report.CreateReportHandler))).Methods("POST")
	apiCreate.Handle("/reports", authed(http.HandlerFunc(report.ReportsHandler))).Methods("GET")
	apiCreate.Handle("/reports/user/ledger", authed(http.HandlerFunc(report.UserLedgerReportsHandler))).Methods("GET")
	apiCreate.Handle("/reports/ledger", admin(report.LedgerReportsHandler)).Methods("GET")
	apiCreate.Handle("/reports/{report_id}", authed(http.HandlerFunc(report.ReportByIDHandler))).Methods("GET")
	apiCreate.Handle("/reports/{report_id}/status", admin(report.UpdateStatusHandler)).Methods("PATCH")
	apiCreate.Handle("/reports/{report_id}/assign", admin(report.AssignOfficerHandler)).Methods("PATCH")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("report-api has connected to the database")

	a.Ledger = ledger.NewService(ledger.Config{
		NodeURL:         a.Config.LedgerNodeURL,
		ContractAddress: a.Config.ContractAddress,
		ABIPath:         a.Config.ContractABIPath,
		AdminAccount:    a.Config.AdminAccount,
		SigningKey:      a.Config.SigningKey,
		DebugMode:       a.Config.DebugMode,
	})

	a.Jobs = scheduler.NewScheduler(databases.NewReportDatabase(a.dbHelper), a.Ledger)

	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
