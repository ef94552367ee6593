package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/billing"
	"letly-be-svc/internal/database"
	"letly-be-svc/internal/lock"
	"letly-be-svc/internal/metrics"
	"letly-be-svc/internal/models"
	"letly-be-svc/internal/notifier"
	"letly-be-svc/internal/repository"
	"letly-be-svc/internal/scheduler"
	"letly-be-svc/internal/service"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(true)
			if err != nil {
				return err
			}
			defer a.close()

			fmt.Printf("Migrated %d tables on %s\n", len(database.Models()), a.cfg.Database.Driver)
			return nil
		},
	}
}

// billService wires a BillService that logs mail instead of sending it
func (a *app) billService(mailer *notifier.Mailer) service.BillService {
	return service.NewBillService(
		repository.NewBillRepository(a.db.DB),
		repository.NewPropertyRepository(a.db.DB),
		lock.NewLocal(),
		mailer,
		metrics.New(),
		a.logger,
	)
}

func GenerateBillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-bills",
		Short: "Generate a period's bills for one property",
		Long: `Generate rent, utility and fee bills for a property using the rent and
utilities stored on it, split equally between its tenants. Existing bills of
the same period are replaced.`,
		Example: `  letlyctl generate-bills --property 1 --period 2025-03
  letlyctl generate-bills --property 1 --period 2025-03 --due-date 2025-03-05`,
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, _ := cmd.Flags().GetUint("property")
			period, _ := cmd.Flags().GetString("period")
			dueDateStr, _ := cmd.Flags().GetString("due-date")

			if propertyID == 0 {
				return fmt.Errorf("--property is required")
			}
			if period == "" {
				period = billing.PeriodOf(time.Now())
			}
			input := service.GenerateInput{PropertyID: propertyID, Period: period}
			if dueDateStr != "" {
				dueDate, err := time.Parse("2006-01-02", dueDateStr)
				if err != nil {
					return fmt.Errorf("invalid due date format. Use YYYY-MM-DD: %w", err)
				}
				input.DueDate = &dueDate
			}

			a, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			property, err := repository.NewPropertyRepository(a.db.DB).GetByID(ctx, propertyID)
			if err != nil {
				return fmt.Errorf("failed to load property %d: %w", propertyID, err)
			}

			mailer := notifier.NewMailer(notifier.NewLogSender(a.logger.Infof), a.logger)
			defer mailer.Wait()

			landlord := auth.Actor{ID: property.LandlordID, Role: models.RoleLandlord}
			result, err := a.billService(mailer).Generate(ctx, landlord, input)
			if err != nil {
				return fmt.Errorf("failed to generate bills: %w", err)
			}

			fmt.Printf("Generated %d bills for %q, period %s, total %.2f\n",
				result.Summary.TotalBills, property.Name, result.Period, result.Summary.TotalAmount)
			return nil
		},
	}

	cmd.Flags().Uint("property", 0, "Property ID")
	cmd.Flags().String("period", "", "Billing period (format: YYYY-MM, default: current month)")
	cmd.Flags().String("due-date", "", "Due date (format: YYYY-MM-DD, default: first day of the period)")
	return cmd
}

func SweepOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-overdue",
		Short: "Mark pending bills past their due date as overdue",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer a.close()

			sweep := scheduler.NewOverdueScheduler(
				a.billService(notifier.NewMailer(notifier.NewLogSender(a.logger.Infof), a.logger)),
				repository.NewLogSchedulerRepository(a.db.DB),
				a.logger,
				a.cfg.Scheduler.OverdueSweepCron,
			)
			docID, err := sweep.RunOnce(cmd.Context())
			if err != nil {
				return fmt.Errorf("overdue sweep %s failed: %w", docID, err)
			}
			fmt.Printf("Overdue sweep %s completed\n", docID)
			return nil
		},
	}
}

func SeedDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-demo",
		Short: "Create a demo landlord, two tenants, a property and this month's bills",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")

			a, err := bootstrap(true)
			if err != nil {
				return err
			}
			defer a.close()

			mailer := notifier.NewMailer(notifier.NewLogSender(a.logger.Infof), a.logger)
			defer mailer.Wait()

			return seedDemo(cmd.Context(), a, mailer, password)
		},
	}
	cmd.Flags().String("password", "password123", "Password for every demo account")
	return cmd
}

func seedDemo(ctx context.Context, a *app, mailer *notifier.Mailer, password string) error {
	jwtManager := auth.NewJWTManager(a.cfg.JWT.Secret, time.Hour)
	userRepo := repository.NewUserRepository(a.db.DB)
	users := service.NewUserService(userRepo, jwtManager, a.logger)
	properties := service.NewPropertyService(repository.NewPropertyRepository(a.db.DB), userRepo, a.logger)

	register := func(name, email string, role models.Role) (auth.Actor, error) {
		res, err := users.Register(ctx, service.RegisterInput{Name: name, Email: email, Password: password, Role: string(role)})
		if err != nil {
			return auth.Actor{}, fmt.Errorf("failed to create %s: %w", email, err)
		}
		fmt.Printf("Created %s %s\n", role, email)
		return auth.Actor{ID: res.User.ID, Role: res.User.Role}, nil
	}

	landlord, err := register("Demo Landlord", "landlord@letly.demo", models.RoleLandlord)
	if err != nil {
		return err
	}
	tenants := []string{"tenant1@letly.demo", "tenant2@letly.demo"}
	for i, email := range tenants {
		if _, err := register(fmt.Sprintf("Demo Tenant %d", i+1), email, models.RoleTenant); err != nil {
			return err
		}
	}

	property, err := properties.Create(ctx, landlord, service.PropertyInput{
		Name:       "Demo House",
		Address:    models.Address{Street: "1 Demo Street", City: "Springfield", ZipCode: "12345"},
		RentAmount: 1200,
		Utilities: []models.UtilityCharge{
			{Name: "Electricity", Amount: 180, SplitType: models.SplitEqual},
			{Name: "Water", Amount: 60, SplitType: models.SplitEqual},
			{Name: "Internet", Amount: 60, SplitType: models.SplitEqual},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create demo property: %w", err)
	}
	for _, email := range tenants {
		if _, err := properties.AddTenant(ctx, landlord, property.ID, email); err != nil {
			return fmt.Errorf("failed to add %s: %w", email, err)
		}
	}

	result, err := a.billService(mailer).Generate(ctx, landlord, service.GenerateInput{
		PropertyID: property.ID,
		Period:     billing.PeriodOf(time.Now()),
		Fees:       []billing.Charge{{Name: "Cleaning", Amount: 40, Details: "Shared areas"}},
	})
	if err != nil {
		return fmt.Errorf("failed to generate demo bills: %w", err)
	}

	fmt.Printf("Seeded property %q with %d bills totalling %.2f (password: %s)\n",
		property.Name, result.Summary.TotalBills, result.Summary.TotalAmount, password)
	return nil
}
