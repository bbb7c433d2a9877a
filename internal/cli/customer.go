package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/wire"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage the customer registry",
}

var customerCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Register a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		phone, _ := cmd.Flags().GetString("phone")
		email, _ := cmd.Flags().GetString("email")
		address, _ := cmd.Flags().GetString("address")

		customer, err := wire.CustomerService().CreateCustomer(ctx, primary.CreateCustomerRequest{
			Name:    args[0],
			Phone:   phone,
			Email:   email,
			Address: address,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Cliente %s registrado: %s\n", customer.ID, customer.Name)
		return nil
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")
		customers, err := wire.CustomerService().ListCustomers(ctx, all)
		if err != nil {
			return err
		}
		printCustomers(customers)
		return nil
	},
}

var customerSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search customers by name or phone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		customers, err := wire.CustomerService().SearchCustomers(ctx, args[0])
		if err != nil {
			return err
		}
		printCustomers(customers)
		return nil
	},
}

var customerUpdateCmd = &cobra.Command{
	Use:   "update [customer-id]",
	Short: "Update a customer's contact details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		phone, _ := cmd.Flags().GetString("phone")
		email, _ := cmd.Flags().GetString("email")
		address, _ := cmd.Flags().GetString("address")

		if name == "" && phone == "" && email == "" && address == "" {
			return fmt.Errorf("nothing to update (set --name, --phone, --email or --address)")
		}

		err = wire.CustomerService().UpdateCustomer(ctx, primary.UpdateCustomerRequest{
			CustomerID: args[0],
			Name:       name,
			Phone:      phone,
			Email:      email,
			Address:    address,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Cliente %s actualizado\n", args[0])
		return nil
	},
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete [customer-id]",
	Short: "Deactivate a customer (intake history is preserved)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		if err := wire.CustomerService().DeleteCustomer(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Cliente %s desactivado\n", args[0])
		return nil
	},
}

func printCustomers(customers []*primary.Customer) {
	if len(customers) == 0 {
		fmt.Println("No customers found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tEMAIL")
	fmt.Fprintln(w, "--\t----\t-----\t-----")
	for _, c := range customers {
		email := c.Email
		if email == "" {
			email = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, email)
	}
	w.Flush()
}

func init() {
	customerCreateCmd.Flags().String("phone", "", "Contact phone")
	customerCreateCmd.Flags().String("email", "", "Contact email")
	customerCreateCmd.Flags().String("address", "", "Street address")
	_ = customerCreateCmd.MarkFlagRequired("phone")

	customerListCmd.Flags().Bool("all", false, "Include deactivated customers")

	customerUpdateCmd.Flags().String("name", "", "New name")
	customerUpdateCmd.Flags().String("phone", "", "New phone")
	customerUpdateCmd.Flags().String("email", "", "New email")
	customerUpdateCmd.Flags().String("address", "", "New address")

	customerCmd.AddCommand(customerCreateCmd)
	customerCmd.AddCommand(customerListCmd)
	customerCmd.AddCommand(customerSearchCmd)
	customerCmd.AddCommand(customerUpdateCmd)
	customerCmd.AddCommand(customerDeleteCmd)
}

// CustomerCmd returns the customer command
func CustomerCmd() *cobra.Command {
	return customerCmd
}
