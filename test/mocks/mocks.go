// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `make mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/catalog.go -destination=catalog_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/purchase_order_repository.go -destination=purchase_order_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/reorder_history_repository.go -destination=reorder_history_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/reorder_service.go -destination=reorder_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/database.go -destination=database_mock.go -package=mocks
