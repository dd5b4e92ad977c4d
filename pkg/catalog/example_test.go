package catalog_test

import (
	"context"
	"fmt"

	"github.com/Sternrassler/product-catalog/internal/testutil"
	"github.com/Sternrassler/product-catalog/pkg/cache"
	"github.com/Sternrassler/product-catalog/pkg/catalog"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func Example() {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	manager := cache.NewManager(cache.Config{Redis: client, Logger: zerolog.Nop()})
	svc := catalog.NewService(manager, testutil.NewMockStore(testutil.NewWidget()), zerolog.Nop())
	ctx := context.Background()

	first, _ := svc.GetProduct(ctx, 1)
	second, _ := svc.GetProduct(ctx, 1)
	cleared, _ := svc.ClearCache(ctx)
	third, _ := svc.GetProduct(ctx, 1)

	fmt.Println(first.Name, first.Source)
	fmt.Println(second.Name, second.Source)
	fmt.Println("cleared", cleared)
	fmt.Println(third.Name, third.Source)
	// Output:
	// Widget database
	// Widget cache
	// cleared 1
	// Widget database
}
