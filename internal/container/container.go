package container

import (
	app "smart-fridge/internal/application"
	"smart-fridge/internal/domain/port"
)

type Container struct {
	Inventory     *app.InventoryStore
	Notifications *app.NotificationPresenter
	Workflow      *app.WorkflowController
	Recipes       *app.RecipeService
}

func New(camera port.CaptureDevice, classifier port.Classifier, inventory port.InventorySource, recipes port.RecipeSource) *Container {
	inventoryStore := app.NewInventoryStore(inventory)
	presenter := app.NewNotificationPresenter()
	workflow := app.NewWorkflowController(camera, classifier, inventoryStore, presenter)
	recipeService := app.NewRecipeService(recipes, inventoryStore)

	return &Container{
		Inventory:     inventoryStore,
		Notifications: presenter,
		Workflow:      workflow,
		Recipes:       recipeService,
	}
}
