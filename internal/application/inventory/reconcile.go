package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/ledger"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

// DefaultMaxImportRows límite de filas por importación si no se configura otro.
const DefaultMaxImportRows = 5000

// errDryRun fuerza el Rollback de una simulación.
var errDryRun = errors.New("simulación: revertir")

// ReconcileOptions opciones de una corrida de reconciliación.
type ReconcileOptions struct {
	// DryRun ejecuta todas las reglas y reporta el resultado, pero siempre revierte.
	DryRun bool
	// RowNumbers número de fila en el archivo de cada registro, para reportar omisiones y fallos.
	// Si no tiene un valor por registro se usa la posición 1-based.
	RowNumbers []int
}

func (o ReconcileOptions) rowNumber(i, total int) int {
	if len(o.RowNumbers) == total {
		return o.RowNumbers[i]
	}
	return i + 1
}

// ReconcileUseCase aplica en bloque filas externas (CSV) al ledger: resuelve categorías e ítems
// (find-or-create), aplica las reglas de stock por fila y registra los movimientos.
// Todo ocurre en una transacción: o se aplican todas las filas procesables o ninguna.
type ReconcileUseCase struct {
	txRunner TxRunner
	log      zerolog.Logger
	maxRows  int
}

// NewReconcileUseCase construye el caso de uso. maxRows <= 0 usa DefaultMaxImportRows.
func NewReconcileUseCase(txRunner TxRunner, log zerolog.Logger, maxRows int) *ReconcileUseCase {
	if maxRows <= 0 {
		maxRows = DefaultMaxImportRows
	}
	return &ReconcileUseCase{txRunner: txRunner, log: log, maxRows: maxRows}
}

// Reconcile procesa records en orden. Las filas sin categoría, sin ítem o con cantidad no positiva
// se omiten y se reportan. Una salida verificable sin stock suficiente aborta todo con
// *domain.InsufficientStockError (Row > 0, errors.Is ErrInsufficientStockDuringImport).
// Ante error también devuelve el resultado parcial con Failure completado.
func (uc *ReconcileUseCase) Reconcile(
	ctx context.Context,
	records []map[string]string,
	actorID string,
	opts ReconcileOptions,
) (*dto.ImportResultDTO, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: el archivo no contiene filas de datos", domain.ErrInvalidInput)
	}
	if len(records) > uc.maxRows {
		return nil, fmt.Errorf("%w: el archivo tiene %d filas; máximo permitido %d",
			domain.ErrInvalidInput, len(records), uc.maxRows)
	}

	log := uc.log.With().Str("actor", actorID).Bool("dry_run", opts.DryRun).Logger()
	result := &dto.ImportResultDTO{DryRun: opts.DryRun, TotalRows: len(records)}

	err := uc.txRunner.Run(ctx, func(
		categoryRepo repository.CategoryRepository,
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		resolver := NewResolver(categoryRepo, itemRepo)
		defer func() {
			result.CreatedCategories = resolver.CreatedCategories
			result.CreatedItems = resolver.CreatedItems
		}()

		for i, record := range records {
			rowNum := opts.rowNumber(i, len(records))
			row := NormalizeRecord(record)
			if reason := row.SkipReason(); reason != "" {
				result.SkippedRows++
				result.Skipped = append(result.Skipped, dto.SkippedRowDTO{Row: rowNum, Reason: reason})
				log.Warn().Int("row", rowNum).Str("reason", reason).Msg("fila omitida")
				continue
			}

			if err := uc.applyRow(ctx, resolver, itemRepo, movRepo, row, rowNum, actorID, result); err != nil {
				return err
			}
		}
		if opts.DryRun {
			return errDryRun
		}
		return nil
	})

	if err != nil && !errors.Is(err, errDryRun) {
		if result.Failure == nil {
			result.Failure = &dto.ImportFailureDTO{Message: err.Error()}
		}
		result.Message = "Importación revertida; no se aplicó ningún cambio."
		log.Error().Err(err).Int("row", result.Failure.Row).Str("item", result.Failure.ItemName).
			Msg("importación abortada")
		return result, err
	}

	if opts.DryRun {
		result.Message = "Simulación completada; no se aplicó ningún cambio."
	} else {
		result.Message = "Importación completada."
	}
	log.Info().
		Int("processed", result.ProcessedRows).
		Int("skipped", result.SkippedRows).
		Int("created_categories", result.CreatedCategories).
		Int("created_items", result.CreatedItems).
		Msg("importación finalizada")
	return result, nil
}

func (uc *ReconcileUseCase) applyRow(
	ctx context.Context,
	resolver *Resolver,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	row ImportRow,
	rowNum int,
	actorID string,
	result *dto.ImportResultDTO,
) error {
	fail := func(err error) error {
		result.Failure = &dto.ImportFailureDTO{Row: rowNum, ItemName: row.ItemName, Message: err.Error()}
		return err
	}

	category, err := resolver.ResolveCategory(ctx, row.CategoryName)
	if err != nil {
		return fail(fmt.Errorf("fila %d: %w", rowNum, err))
	}
	item, err := resolver.ResolveItem(ctx, ItemSpec{
		Name:         row.ItemName,
		VariantLabel: row.VariantLabel,
		UnitType:     row.UnitType,
		Description:  row.Description,
		CategoryID:   category.ID,
	})
	if err != nil {
		return fail(fmt.Errorf("fila %d: %w", rowNum, err))
	}

	// La política se evalúa con los datos almacenados del ítem, no con los de la fila.
	check := row.MovementType == entity.MovementTypeOUT &&
		ledger.RequiresStockCheck(item.UnitType, item.Name, category.Name)

	_, err = ApplyInTx(ctx, itemRepo, movRepo, MovementInputDTO{
		ItemID:    item.ID,
		Type:      row.MovementType,
		Quantity:  row.Quantity,
		Reason:    row.Reason,
		Source:    entity.MovementSourceImport,
		CreatedBy: actorID,
	}, check)
	if err != nil {
		if stockErr, ok := IsInsufficientStock(err); ok {
			stockErr.Row = rowNum
			result.Failure = &dto.ImportFailureDTO{
				Row:       rowNum,
				ItemName:  item.Name,
				Requested: stockErr.Requested,
				Available: stockErr.Available,
				Message:   stockErr.Error(),
			}
			return stockErr
		}
		return fail(fmt.Errorf("fila %d: %w", rowNum, err))
	}

	result.ProcessedRows++
	if row.MovementType == entity.MovementTypeOUT {
		result.MovementsOut++
	} else {
		result.MovementsIn++
	}
	return nil
}
