package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/ctx"
	gql "github.com/souqdz/souq/pkg/graphql"
	"github.com/souqdz/souq/pkg/logger"
)

// GraphQLController exposes a read-only catalog query endpoint so partner
// storefronts can fetch products without chaining REST calls.
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(catalog *services.CatalogService) (*GraphQLController, error) {
	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.Int},
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"name":        &graphql.Field{Type: graphql.String},
			"slug":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Float},
			"stock":       &graphql.Field{Type: graphql.Int},
			"active":      &graphql.Field{Type: graphql.Boolean},
			"image_url":   &graphql.Field{Type: graphql.String},
			"gallery":     &graphql.Field{Type: graphql.NewList(graphql.String)},
			"sizes":       &graphql.Field{Type: graphql.NewList(graphql.String)},
			"colors":      &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Categories()
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.Int},
					"sort":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					categoryID, _ := p.Args["category"].(int)
					sort, _ := p.Args["sort"].(string)
					products, _, err := catalog.Products(uint(categoryID), sort, 1, 100)
					return products, err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					slug, _ := p.Args["slug"].(string)
					return catalog.ProductBySlug(slug)
				},
			},
		},
	})

	schema, err := gql.NewSchema(query)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

// Query executes one GraphQL request.
func (g *GraphQLController) Query(c *ctx.Context) {
	var in struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if !c.BindJSON(&in) {
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         g.schema,
		RequestString:  in.Query,
		VariableValues: in.Variables,
		Context:        c.Context(),
	})
	if len(result.Errors) > 0 {
		logger.Warn("graphql query errors", "errors", result.Errors)
	}
	c.JSON(http.StatusOK, result)
}
