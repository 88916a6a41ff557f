// Command pos is the single-terminal front end: it prompts, validates and
// retries input, and prints user-facing messages. All order/table rules live
// in the workflow; this loop only decides what to ask next.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/messijoe-pos/api/internal/enum"
	"github.com/messijoe-pos/api/internal/floor"
	"github.com/messijoe-pos/api/internal/menu"
	"github.com/messijoe-pos/api/internal/order"
	"github.com/messijoe-pos/api/internal/receipt"
	"github.com/messijoe-pos/api/internal/service"
	"github.com/messijoe-pos/api/internal/txnid"
)

const (
	tableCount    = 4
	tableCapacity = 4
)

func main() {
	sink, err := receipt.NewFileSink(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flow := service.NewWorkflow(
		floor.NewRegistry(tableCount, tableCapacity),
		order.NewBook(),
		menu.Default(),
		txnid.NewSequential(),
		sink,
	)

	in := bufio.NewReader(os.Stdin)
	for {
		showMainMenu(flow)
		switch checkNum(in, 1, 4, "Choose an option: ") {
		case 1:
			placeOrder(in, flow)
		case 2:
			completeOrder(in, flow)
		case 3:
			payForOrder(in, flow)
		case 4:
			if flow.CanClose() {
				fmt.Println("Goodbye!")
				return
			}
			fmt.Println("Cannot close - orders still pending.")
		}
	}
}

func showMainMenu(flow *service.Workflow) {
	fmt.Println("\n--- MESSIJOE'S MAIN MENU ---")
	fmt.Println("1. Enter Order")
	if hasPending(flow) {
		fmt.Println("2. Complete Order")
		fmt.Println("3. Calculate and Pay Bill")
	}
	if flow.CanClose() {
		fmt.Println("4. Close the Restaurant")
	}
}

// hasPending reports whether any order still awaits completion or payment.
func hasPending(flow *service.Workflow) bool {
	for _, t := range flow.TableStatuses() {
		switch t.OrderStatus {
		case enum.OrderStatusAwaitingCompletion, enum.OrderStatusAwaitingPayment:
			return true
		}
	}
	return false
}

// checkNum prompts until the user enters an integer in [min, max].
func checkNum(in *bufio.Reader, min, max int, prompt string) int {
	for {
		fmt.Print(prompt)
		line, err := in.ReadString('\n')
		if err != nil {
			fmt.Println("\nGoodbye!")
			os.Exit(0)
		}
		val, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || val < min || val > max {
			fmt.Println("Invalid input. Try again.")
			continue
		}
		return val
	}
}

func placeOrder(in *bufio.Reader, flow *service.Workflow) {
	tableID := checkNum(in, 1, tableCount, fmt.Sprintf("Enter table number (1-%d): ", tableCount))

	available, err := flow.AvailableSeats(tableID)
	if err != nil {
		fmt.Println(err)
		return
	}
	if available <= 0 {
		fmt.Printf("Sorry! Table %d is full.\n", tableID)
		return
	}
	fmt.Printf("\n%d seat(s) available at this table.\n\n", available)

	guests := checkNum(in, 1, available, "Enter number of guests to seat: ")

	showMenu(flow)
	selections := make([]int, 0, guests)
	for i := 0; i < guests; i++ {
		choice := checkNum(in, 1, len(flow.Menu()), fmt.Sprintf("Guest %d, enter item number: ", i+1))
		selections = append(selections, choice)
	}

	if err := flow.PlaceOrder(tableID, guests, selections); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Order placed for table %d successfully.\n", tableID)
}

func showMenu(flow *service.Workflow) {
	fmt.Println("--- Menu ---")
	for i, item := range flow.Menu() {
		fmt.Printf("%d. %s - $%d\n", i+1, item.Name, item.Price)
	}
}

func showTableStatuses(flow *service.Workflow) {
	for _, t := range flow.TableStatuses() {
		switch t.OrderStatus {
		case enum.OrderStatusAwaitingCompletion:
			fmt.Printf("Table #%d status: awaiting completion\n", t.TableID)
		case enum.OrderStatusAwaitingPayment:
			fmt.Printf("Table #%d status: awaiting payment\n", t.TableID)
		case enum.OrderStatusSettled:
			fmt.Printf("Table #%d status: all done\n", t.TableID)
		}
	}
}

// pickPendingTable shows the floor report and prompts for a table, or
// reports that nothing is pending.
func pickPendingTable(in *bufio.Reader, flow *service.Workflow, prompt string) (int, bool) {
	if !hasPending(flow) {
		fmt.Println("No pending orders / all have been completed and paid.")
		return 0, false
	}
	showTableStatuses(flow)
	return checkNum(in, 1, tableCount, prompt), true
}

func completeOrder(in *bufio.Reader, flow *service.Workflow) {
	tableID, ok := pickPendingTable(in, flow, "Enter table number to complete order: ")
	if !ok {
		return
	}

	if err := flow.CompleteOrder(tableID); err != nil {
		switch {
		case errors.Is(err, order.ErrNoSuchOrder):
			fmt.Printf("No order found for Table %d.\n", tableID)
		case errors.Is(err, order.ErrAlreadyCompleted):
			fmt.Printf("Order for Table %d is already completed.\n", tableID)
		default:
			fmt.Println(err)
		}
		return
	}
	fmt.Printf("Order for table %d marked as complete, awaiting payment.\n\n", tableID)
}

func payForOrder(in *bufio.Reader, flow *service.Workflow) {
	tableID, ok := pickPendingTable(in, flow, "Enter table number to pay: ")
	if !ok {
		return
	}

	bill, err := flow.ComputeBill(tableID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNoSuchOrder):
			fmt.Printf("No order found for Table %d.\n", tableID)
		case errors.Is(err, order.ErrNotCompleted):
			fmt.Printf("Order for Table %d is not completed yet!\n", tableID)
			fmt.Println("Please complete the order before payment.")
		default:
			fmt.Println(err)
		}
		return
	}

	fmt.Printf("Subtotal: $%s\n", bill.Subtotal.StringFixed(2))
	fmt.Printf("Tax: $%s\n", bill.Tax.StringFixed(2))
	fmt.Printf("Tip: $%s\n", bill.Tip.StringFixed(2))
	fmt.Printf("Total: $%s\n", bill.Total.StringFixed(2))

	fmt.Print("Confirm payment? (y/n): ")
	line, err := in.ReadString('\n')
	if err != nil || !strings.EqualFold(strings.TrimSpace(line), "y") {
		fmt.Println("Payment cancelled.")
		return
	}

	_, path, err := flow.ConfirmPayment(tableID)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Payment successful. Receipt saved to '%s'.\n", path)
}
