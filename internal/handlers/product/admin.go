package product

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shjra/Shjra-Maps/internal/cache"
	"github.com/Shjra/Shjra-Maps/internal/middleware"
	"github.com/Shjra/Shjra-Maps/internal/models"
	"github.com/Shjra/Shjra-Maps/internal/services"
	"github.com/Shjra/Shjra-Maps/internal/store"
	"github.com/Shjra/Shjra-Maps/internal/utils"
)

//
// --- MUTATIONS ADMIN ---
//
// Les trois endpoints passent derrière AuthRequired + RequireAdmin.
// Chaque mutation réussie invalide le cache, maintient l'index Elastic et
// émet la notification d'audit en fire-and-forget.
//

// CreateProduct crée un produit avec un id snowflake (numérique, ordonné
// dans le temps, sans risque de collision)
func (h *Handler) CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	p := input.ToProduct(h.IDNode.Generate().Int64(), time.Now())

	if err := h.Store.Insert(ctx, p); err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	cache.InvalidateProducts(ctx)
	go services.IndexProduct(p)

	actor, _ := middleware.CurrentUser(c)
	h.Audit.SendAsync(utils.BuildProductEmbed(utils.ActionAdd, p, actor))

	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

// UpdateProduct fusionne les champs présents dans la requête sur
// l'enregistrement existant ; les champs absents sont conservés
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}

	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	p, err := h.Store.UpdateByID(ctx, id, update)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Erreur mise à jour produit %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	cache.InvalidateProducts(ctx)
	go services.IndexProduct(p)

	actor, _ := middleware.CurrentUser(c)
	h.Audit.SendAsync(utils.BuildProductEmbed(utils.ActionEdit, p, actor))

	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

// DeleteProduct supprime l'enregistrement s'il existe. Supprimer un id
// inconnu reste un succès, mais sans notification d'audit.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	ctx := c.Request.Context()
	deleted, ok, err := h.Store.DeleteByID(ctx, id)
	if err != nil {
		log.Printf("❌ Erreur suppression produit %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	if ok {
		cache.InvalidateProducts(ctx)
		go services.RemoveProduct(id)

		actor, _ := middleware.CurrentUser(c)
		h.Audit.SendAsync(utils.BuildProductEmbed(utils.ActionDelete, deleted, actor))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
