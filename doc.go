// Project Structure Overview
/*
Mystic-NFT-backend/
├── cmd/
│   └── server/
│       └── main.go
├── internal/
│   ├── config/
│   │   ├── config.go
│   │   └── database.go
│   ├── models/
│   │   ├── common.go
│   │   ├── pdf.go
│   │   ├── reservation.go
│   │   └── referral_profit_log.go
│   ├── repository/
│   │   ├── store.go
│   │   └── gorm_store.go
│   ├── storage/
│   │   ├── storage.go
│   │   ├── cloudinary.go
│   │   ├── s3.go
│   │   └── instrumented.go
│   ├── services/
│   │   ├── pdf_service.go
│   │   ├── reservation_service.go
│   │   └── referral_service.go
│   ├── handlers/
│   │   ├── pdf.go
│   │   ├── reservation.go
│   │   ├── referral.go
│   │   └── health.go
│   ├── middleware/
│   │   ├── auth.go
│   │   ├── cors.go
│   │   ├── logging.go
│   │   ├── metrics.go
│   │   └── rate_limit.go
│   ├── monitoring/
│   │   └── metrics.go
│   ├── database/
│   │   └── connection.go
│   ├── utils/
│   │   ├── errors.go
│   │   ├── jwt.go
│   │   ├── validator.go
│   │   ├── pagination.go
│   │   └── response.go
│   ├── router/
│   │   └── router.go
│   └── tests/
│       └── fakes.go
└── go.mod
*/

// Package mysticnft is the Mystic NFT backend: PDF document hosting plus the
// NFT reservation and referral profit ledger. The server lives in cmd/server.
package mysticnft
