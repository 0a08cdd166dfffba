package routes

// Routes package cung cấp routing cho storefront service
//
// Cấu trúc:
// - api.go: API routes (/v1/*), storefront công khai và /v1/admin (cần token admin)
// - web.go: Web routes (/, /docs)
// - middleware.go: middleware chung
//
// Sử dụng:
// routes.SetupMiddleware(router, logger)
// routes.SetupAllRoutes(router, storefront, admin, auth)
