// Command board is a terminal kanban view of a restaurant's orders. It
// polls the API every 5 seconds and drives status transitions from stdin:
//
//	a <n>  advance order n one column
//	r <n>  regress order n one column
//	c <n>  cancel order n
//	q      quit
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/comandahq/comanda/internal/model"
	"github.com/comandahq/comanda/internal/status"
	"github.com/comandahq/comanda/pkg/client"
)

var columns = []string{
	status.BoardReceived,
	status.BoardPreparing,
	status.BoardReady,
	status.BoardOnTheWay,
	status.BoardFinished,
	status.BoardCancelled,
}

type board struct {
	api          *client.Client
	restaurantID string
	orders       []model.Order
}

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "API base URL")
	restaurantID := flag.String("restaurant", os.Getenv("COMANDA_RESTAURANT_ID"), "restaurant id")
	flag.Parse()

	if *restaurantID == "" {
		fmt.Fprintln(os.Stderr, "missing -restaurant (or COMANDA_RESTAURANT_ID)")
		os.Exit(1)
	}

	b := &board{api: client.New(*apiURL), restaurantID: *restaurantID}
	ctx := context.Background()

	b.refresh(ctx)
	b.render()

	commands := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			commands <- strings.TrimSpace(scanner.Text())
		}
		close(commands)
	}()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.refresh(ctx)
			b.render()
		case line, ok := <-commands:
			if !ok || line == "q" {
				return
			}
			if line == "" {
				continue
			}
			if err := b.handle(ctx, line); err != nil {
				fmt.Fprintln(os.Stderr, "erro:", err)
			}
			b.refresh(ctx)
			b.render()
		}
	}
}

func (b *board) refresh(ctx context.Context) {
	orders, err := b.api.Orders(ctx, b.restaurantID)
	if err != nil {
		// polling keeps going; failures only get logged
		fmt.Fprintln(os.Stderr, "erro ao buscar pedidos:", err)
		return
	}
	b.orders = orders
}

func (b *board) render() {
	fmt.Print("\033[2J\033[H")
	fmt.Printf("== comanda — %s — %s ==\n\n", b.restaurantID, time.Now().Format("15:04:05"))
	for _, column := range columns {
		fmt.Printf("[%s]\n", strings.ToUpper(column))
		for _, order := range b.orders {
			if status.ToBoard(order.Status) != column {
				continue
			}
			fmt.Printf("  #%d %s — R$ %.2f\n", order.OrderNumber, order.ClientName, order.TotalPrice)
		}
		fmt.Println()
	}
	fmt.Println("a <n> avançar | r <n> voltar | c <n> cancelar | q sair")
}

func (b *board) handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("comando inválido: %q", line)
	}
	number, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return fmt.Errorf("número de pedido inválido: %q", fields[1])
	}

	order := b.find(number)
	if order == nil {
		return fmt.Errorf("pedido #%d não encontrado", number)
	}
	column := status.ToBoard(order.Status)

	var next string
	switch fields[0] {
	case "a":
		advanced, ok := status.Advance(column)
		if !ok {
			return fmt.Errorf("pedido #%d não pode avançar", number)
		}
		next = advanced
	case "r":
		regressed, ok := status.Regress(column)
		if !ok {
			return fmt.Errorf("pedido #%d não pode voltar", number)
		}
		next = regressed
	case "c":
		if !status.CanCancel(column) {
			return fmt.Errorf("pedido #%d não pode ser cancelado", number)
		}
		next = status.BoardCancelled
	default:
		return fmt.Errorf("comando desconhecido: %q", fields[0])
	}

	return b.api.UpdateStatus(ctx, order.ID, status.ToBackend(next))
}

func (b *board) find(number int64) *model.Order {
	for i := range b.orders {
		if b.orders[i].OrderNumber == number {
			return &b.orders[i]
		}
	}
	return nil
}
