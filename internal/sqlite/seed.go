package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mokka-studios/datatable/pkg/types"
)

// demoCategories are seeded in ordinal order.
var demoCategories = []string{"Electronics", "Furniture", "Stationery", "Kitchen"}

var demoCustomers = []types.Customer{
	{Name: "Ada Lovelace", Email: "ada@analytical.io", City: "London", Status: types.CustomerActive, Orders: 14, Spent: 2380.50},
	{Name: "Grace Hopper", Email: "grace@cobol.dev", City: "Arlington", Status: types.CustomerActive, Orders: 9, Spent: 1210},
	{Name: "Alan Turing", Email: "alan@bletchley.uk", City: "Manchester", Status: types.CustomerInactive, Orders: 3, Spent: 310.25},
	{Name: "Katherine Johnson", Email: "katherine@nasa.gov", City: "Hampton", Status: types.CustomerActive, Orders: 21, Spent: 4975},
	{Name: "Edsger Dijkstra", Email: "edsger@eindhoven.nl", City: "Eindhoven", Status: types.CustomerLead},
	{Name: "Barbara Liskov", Email: "barbara@mit.edu", City: "Boston", Status: types.CustomerActive, Orders: 6, Spent: 840},
	{Name: "Ken Thompson", Email: "ken@bell-labs.com", City: "Murray Hill", Status: types.CustomerInactive, Orders: 1, Spent: 49.99},
	{Name: "Margaret Hamilton", Email: "margaret@apollo.space", City: "Cambridge", Status: types.CustomerActive, Orders: 11, Spent: 1999},
	{Name: "Dennis Ritchie", Email: "dmr@bell-labs.com", City: "Berkeley Heights", Status: types.CustomerLead},
	{Name: "Frances Allen", Email: "fran@ibm.com", City: "Peru", Status: types.CustomerActive, Orders: 4, Spent: 512.40},
	{Name: "John Backus", Email: "john@fortran.org", City: "Philadelphia", Status: types.CustomerInactive, Orders: 2, Spent: 120},
	{Name: "Radia Perlman", Email: "radia@spanning.tree", City: "Portsmouth", Status: types.CustomerActive, Orders: 8, Spent: 1320.75},
}

// demoProduct names its category by index into demoCategories.
type demoProduct struct {
	types.Product
	category int
}

var demoProducts = []demoProduct{
	{types.Product{Name: "Mechanical keyboard", Price: 129, Stock: 34, Status: types.ProductAvailable}, 0},
	{types.Product{Name: "USB-C hub", Price: 49.5, Stock: 0, Status: types.ProductOutOfStock}, 0},
	{types.Product{Name: "27in monitor", Price: 329, Stock: 12, Status: types.ProductAvailable}, 0},
	{types.Product{Name: "Noise cancelling headphones", Price: 249, Stock: 7, Status: types.ProductAvailable}, 0},
	{types.Product{Name: "Standing desk", Price: 499, Stock: 5, Status: types.ProductAvailable}, 1},
	{types.Product{Name: "Office chair", Price: 289, Stock: 0, Status: types.ProductOutOfStock}, 1},
	{types.Product{Name: "Bookshelf", Price: 159, Stock: 9, Status: types.ProductAvailable}, 1},
	{types.Product{Name: "Dot grid notebook", Price: 14.9, Stock: 220, Status: types.ProductAvailable}, 2},
	{types.Product{Name: "Fountain pen", Price: 38, Stock: 41, Status: types.ProductAvailable}, 2},
	{types.Product{Name: "Desk calendar 2023", Price: 9.5, Stock: 3, Status: types.ProductDiscontinued}, 2},
	{types.Product{Name: "Pour-over kettle", Price: 65, Stock: 18, Status: types.ProductAvailable}, 3},
	{types.Product{Name: "Ceramic mug", Price: 12, Stock: 120, Status: types.ProductAvailable}, 3},
}

// seed fills an empty database with the demo entities and writes their
// JSONL files. Creation times are spaced a minute apart so list order is
// stable.
func (b *Backend) seed(ctx context.Context) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	base := b.now().Add(-time.Duration(len(demoCustomers)+len(demoProducts)) * time.Minute)
	tick := 0
	next := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	categoryIDs := make([]string, len(demoCategories))
	for i, name := range demoCategories {
		c := types.Category{ID: newUUID(), Name: name, Ordinal: i, CreatedAt: next()}
		if err := b.categories.insert(ctx, tx, c); err != nil {
			return err
		}
		categoryIDs[i] = c.ID
	}
	for _, c := range demoCustomers {
		t := next()
		c.ID, c.CreatedAt, c.UpdatedAt = newUUID(), t, t
		if err := b.customers.insert(ctx, tx, c); err != nil {
			return err
		}
	}
	for _, d := range demoProducts {
		p := d.Product
		t := next()
		p.ID, p.CategoryID, p.CreatedAt, p.UpdatedAt = newUUID(), categoryIDs[d.category], t, t
		if err := b.products.insert(ctx, tx, p); err != nil {
			return err
		}
	}

	var files []stagedJSONL
	for _, stage := range []func(context.Context, querier) (stagedJSONL, error){
		b.categories.stage, b.customers.stage, b.products.stage,
	} {
		f, err := stage(ctx, tx)
		if err != nil {
			for _, staged := range files {
				staged.discard()
			}
			return fmt.Errorf("persisting demo data: %w", err)
		}
		files = append(files, f)
	}
	if err := b.commitStaged(tx, files...); err != nil {
		return err
	}
	b.log.WithFields(logrus.Fields{
		"categories": len(demoCategories),
		"customers":  len(demoCustomers),
		"products":   len(demoProducts),
	}).Info("seeded demo data")
	return nil
}
