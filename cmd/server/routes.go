package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"fundstack.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler          *handlers.AuthHandler
	userHandler          *handlers.UserHandler
	structureHandler     *handlers.StructureHandler
	smartContractHandler *handlers.SmartContractHandler
	authMiddleware       gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public except profile)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.PUT("/me", d.authMiddleware, d.authHandler.UpdateMe)
		}

		// User administration (protected; root gate lives in the usecases)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("", d.userHandler.ListUsers)
			users.GET("/:id", d.userHandler.GetUser)
			users.PATCH("/:id/status", d.userHandler.UpdateUserStatus)
			users.PATCH("/:id/role", d.userHandler.UpdateUserRole)
			users.DELETE("/:id", d.userHandler.DeleteUser)
		}

		// Structure hierarchy (protected)
		structures := v1.Group("/structures")
		structures.Use(d.authMiddleware)
		{
			structures.POST("", d.structureHandler.CreateStructure)
			structures.GET("", d.structureHandler.ListStructures)
			structures.GET("/roots", d.structureHandler.GetRoots)
			structures.GET("/:id", d.structureHandler.GetStructure)
			structures.GET("/:id/children", d.structureHandler.GetChildren)
			structures.PUT("/:id", d.structureHandler.UpdateStructure)
			structures.PUT("/:id/financials", d.structureHandler.UpdateFinancials)
			structures.DELETE("/:id", d.structureHandler.DeleteStructure)
		}

		// Investments (protected)
		investments := v1.Group("/investments")
		investments.Use(d.authMiddleware)
		{
			investments.POST("", d.structureHandler.CreateInvestment)
		}

		// Smart contracts (protected)
		contracts := v1.Group("/smart-contracts")
		contracts.Use(d.authMiddleware)
		{
			contracts.POST("", d.smartContractHandler.CreateContract)
			contracts.GET("", d.smartContractHandler.ListContracts)
			contracts.GET("/:id", d.smartContractHandler.GetContract)
			contracts.PUT("/:id", d.smartContractHandler.UpdateContract)
			contracts.PATCH("/:id/status", d.smartContractHandler.UpdateStatus)
			contracts.DELETE("/:id", d.smartContractHandler.DeleteContract)
		}
	}
}
