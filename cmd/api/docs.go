package main

// @title ConnectChain Admin API
// @version 1.0
// @description Administrative backend for the ConnectChain B2B marketplace
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/connectchain/admin-api
// @contact.email support@connectchain.example

// @license.name MIT
// @license.url https://github.com/connectchain/admin-api/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Products
// @tag.description Product catalog management endpoints

// @tag.name Categories
// @tag.description Category management endpoints

// @tag.name Suppliers
// @tag.description Supplier account endpoints

// @tag.name Customers
// @tag.description Customer account endpoints

// @tag.name Orders
// @tag.description Order management endpoints

// @tag.name Health
// @tag.description Health check endpoints
