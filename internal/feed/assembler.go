package feed

import (
	"context"
	"errors"

	"channelfeed/internal/catalog"
	"channelfeed/internal/logger"
)

// Assembler produces one page of the feed: paginate the catalog with the
// shop's filters, build an item per row, skip what cannot be exported.
type Assembler struct {
	variants *catalog.VariantRepository
	builder  *Builder
	logger   *logger.Logger
}

func NewAssembler(variants *catalog.VariantRepository, builder *Builder, log *logger.Logger) *Assembler {
	return &Assembler{variants: variants, builder: builder, logger: log}
}

// List returns the feed items of one page plus the total number of matching
// variants. With the images-only setting a page may come back shorter than
// the poll limit; missing rows are not backfilled.
func (a *Assembler) List(ctx context.Context, sc *ShopContext, offset int) ([]*Item, int64, error) {
	filters := FiltersFromSettings(sc)

	rows, total, err := a.variants.List(ctx, offset, sc.Settings.PollLimit, filters)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*Item, 0, len(rows))
	for i := range rows {
		item, err := a.builder.BuildItem(ctx, &rows[i], sc)
		if errors.Is(err, catalog.ErrNotFound) {
			// A vanished variant never fails the batch.
			a.logger.Debug("skipping vanished variant %d", rows[i].ID)
			continue
		}
		if err != nil {
			return nil, 0, err
		}

		if sc.Settings.OnlyWithImages && len(item.Images) == 0 {
			continue
		}

		items = append(items, item)
	}

	return items, total, nil
}

// FiltersFromSettings derives the catalog filter set of one shop: its
// category subtree always, active-only and has-EAN when configured.
func FiltersFromSettings(sc *ShopContext) []catalog.Filter {
	filters := []catalog.Filter{
		{Property: catalog.CategoryScopeProperty, Expression: "=", Value: sc.Shop.CategoryID},
	}

	if sc.Settings.OnlyActive {
		filters = append(filters,
			catalog.Filter{Property: "product.active", Expression: "=", Value: true},
			catalog.Filter{Property: "variant.active", Expression: "=", Value: true},
		)
	}

	if sc.Settings.OnlyWithEAN {
		filters = append(filters,
			catalog.Filter{Property: "variant.ean", Expression: "!=", Value: ""},
		)
	}

	return filters
}
