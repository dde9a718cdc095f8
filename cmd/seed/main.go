// Command seed fills the configured database with a demo restaurant and a
// batch of orders for local board testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/comandahq/comanda/config"
	"github.com/comandahq/comanda/internal/model"
	"github.com/comandahq/comanda/internal/repository"
	"github.com/comandahq/comanda/internal/service"
	"github.com/comandahq/comanda/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var (
	names    = []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Fábio"}
	dishes   = []string{"1x feijoada", "2x coxinha", "1x pizza margherita", "1x açaí 500ml", "3x pastel de queijo"}
	origins  = []string{model.OriginIAWhatsApp, model.OriginPDV, model.OriginBalcao}
	statuses = []string{"pending", "preparing", "mounting", "delivering", "finished"}
)

func main() {
	n := flag.Int("n", 25, "orders to create")
	email := flag.String("email", "demo@comanda.app", "restaurant login email")
	plan := flag.String("plan", model.PlanAdvanced, "restaurant plan")
	flag.Parse()

	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	ctx := context.Background()

	restaurantRepo := repository.NewRestaurantRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	clientRepo := repository.NewClientRepository(db)

	restaurant, err := restaurantRepo.GetByEmail(ctx, *email)
	if err != nil {
		restaurant = &model.Restaurant{
			ID:    uuid.New().String(),
			Name:  "Restaurante Demo",
			Email: *email,
			Plan:  *plan,
		}
		if err := restaurantRepo.Create(ctx, restaurant); err != nil {
			panic(err)
		}
	}

	directory := service.NewDirectoryReplicator(clientRepo, 1000)
	stop := directory.Start(2)
	defer stop(ctx)

	orderSvc := service.NewOrderService(orderRepo, directory, cfg.Server.BaseURL)
	for i := 0; i < *n; i++ {
		name := names[rand.Intn(len(names))]
		in := service.OrderInput{
			RestaurantID: restaurant.ID,
			ClientName:   name,
			ClientPhone:  fmt.Sprintf("119%08d", rand.Intn(100000000)),
			Items:        []string{dishes[rand.Intn(len(dishes))]},
			TotalPrice:   10 + rand.Float64()*90,
			Origin:       origins[rand.Intn(len(origins))],
			Status:       statuses[rand.Intn(len(statuses))],
			ServiceType:  model.ServiceDelivery,
		}
		if i%3 == 0 {
			in.ServiceType = model.ServiceLocal
			in.ClientPhone = ""
		}
		if _, _, _, err := orderSvc.Create(ctx, in); err != nil {
			panic(err)
		}
	}

	fmt.Printf("seeded %d orders for restaurant %s (%s)\n", *n, restaurant.ID, *email)
}
