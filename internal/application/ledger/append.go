package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// Draft es una entrada de ledger aún sin confirmar. El ID y CreatedAt se
// asignan al confirmar (UUIDv7, ordenado en el tiempo), en el orden de
// entrada del batch.
type Draft struct {
	ProductID  string
	LocationID string
	Type       string // entity.TxType*
	Qty        int64  // delta firmado, nunca cero
	RefType    string
	RefID      string
	CreatedBy  string
}

// Options controla el append.
type Options struct {
	// EnforceNonNegative aborta el batch completo con ErrInsufficientStock
	// si algún par (producto, ubicación) con delta neto negativo quedaría
	// bajo cero. Las salidas de negocio (venta, traslado, consumo de
	// producción, devolución a proveedor) van con guarda; los ajustes no.
	EnforceNonNegative bool
}

// Result es el batch confirmado más los balances resultantes.
type Result struct {
	Entries  []*entity.LedgerEntry
	Balances []*entity.StockBalance
}

// Service implementa el append-and-project: persistir el batch en el ledger
// y proyectar el agregado de balances dentro de una misma transacción.
// Reemplaza al trigger de BD del diseño original por una operación atómica
// explícita a nivel de aplicación, visible y testeable.
type Service struct {
	txRunner TxRunner
}

// NewService construye el servicio del ledger.
func NewService(txRunner TxRunner) *Service {
	return &Service{txRunner: txRunner}
}

// Append confirma el batch en su propia transacción. Todo o nada: o todas
// las entradas quedan registradas con sus balances proyectados, o ninguna.
func (s *Service) Append(ctx context.Context, drafts []Draft, opts Options) (*Result, error) {
	var res *Result
	err := s.txRunner.Run(ctx, func(tx TxRepos) error {
		var err error
		res, err = AppendInTx(ctx, tx, drafts, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// AppendInTx confirma el batch usando repositorios ya atados a la
// transacción del caller (los emisores actualizan sus documentos en la
// misma tx). Secuencia:
//
//  1. Validar drafts: cantidad distinta de cero, tipo conocido, producto y
//     ubicación existentes. Cualquier fallo aborta sin escribir nada.
//  2. Agregar deltas por par (producto, ubicación) y aplicar un incremento
//     atómico por par, en orden ordenado de pares para que dos batches
//     concurrentes no se bloqueen en cruz.
//  3. Con la fila del par aún bloqueada, verificar la guarda de
//     no-negatividad si aplica.
//  4. Insertar las entradas en el orden del batch con IDs UUIDv7.
func AppendInTx(ctx context.Context, tx TxRepos, drafts []Draft, opts Options) (*Result, error) {
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: batch vacío", domain.ErrInvalidInput)
	}
	for _, d := range drafts {
		if d.Qty == 0 {
			return nil, fmt.Errorf("%w: cantidad cero no aporta información", domain.ErrInvalidInput)
		}
		if !validTxType(d.Type) {
			return nil, fmt.Errorf("%w: tipo de transacción %q", domain.ErrInvalidInput, d.Type)
		}
		if d.ProductID == "" || d.LocationID == "" {
			return nil, fmt.Errorf("%w: producto y ubicación requeridos", domain.ErrInvalidInput)
		}
	}
	if err := checkRefs(ctx, tx, drafts); err != nil {
		return nil, err
	}

	// Delta neto por par, en orden determinista.
	type pair struct{ productID, locationID string }
	sums := make(map[pair]int64, len(drafts))
	for _, d := range drafts {
		sums[pair{d.ProductID, d.LocationID}] += d.Qty
	}
	pairs := make([]pair, 0, len(sums))
	for p := range sums {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].productID != pairs[j].productID {
			return pairs[i].productID < pairs[j].productID
		}
		return pairs[i].locationID < pairs[j].locationID
	})

	balances := make([]*entity.StockBalance, 0, len(pairs))
	for _, p := range pairs {
		delta := sums[p]
		bal, err := tx.Balance.ApplyDelta(ctx, p.productID, p.locationID, delta)
		if err != nil {
			return nil, err
		}
		// La guarda corre con la fila bloqueada: ningún otro batch puede
		// colarse entre el incremento y esta verificación.
		if opts.EnforceNonNegative && delta < 0 && bal.CurrentQty < 0 {
			return nil, fmt.Errorf("%w: producto %s en ubicación %s", domain.ErrInsufficientStock, p.productID, p.locationID)
		}
		balances = append(balances, bal)
	}

	now := time.Now().UTC()
	entries := make([]*entity.LedgerEntry, 0, len(drafts))
	for _, d := range drafts {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generar id de entrada: %w", err)
		}
		e := &entity.LedgerEntry{
			ID:         id.String(),
			ProductID:  d.ProductID,
			LocationID: d.LocationID,
			Type:       d.Type,
			Qty:        d.Qty,
			RefType:    d.RefType,
			RefID:      d.RefID,
			CreatedAt:  now,
			CreatedBy:  d.CreatedBy,
		}
		if err := tx.Ledger.Insert(ctx, e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return &Result{Entries: entries, Balances: balances}, nil
}

// checkRefs valida existencia referencial de productos y ubicaciones del
// batch (deduplicado) contra los datos maestros.
func checkRefs(ctx context.Context, tx TxRepos, drafts []Draft) error {
	seenProducts := make(map[string]bool)
	seenLocations := make(map[string]bool)
	for _, d := range drafts {
		if !seenProducts[d.ProductID] {
			ok, err := tx.Product.Exists(ctx, d.ProductID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: producto %s no existe", domain.ErrInvalidInput, d.ProductID)
			}
			seenProducts[d.ProductID] = true
		}
		if !seenLocations[d.LocationID] {
			ok, err := tx.Location.Exists(ctx, d.LocationID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: ubicación %s no existe", domain.ErrInvalidInput, d.LocationID)
			}
			seenLocations[d.LocationID] = true
		}
	}
	return nil
}

func validTxType(t string) bool {
	switch t {
	case entity.TxTypePurchase, entity.TxTypeSale, entity.TxTypeTransfer,
		entity.TxTypeAdjustment, entity.TxTypeProduction, entity.TxTypeReturn:
		return true
	}
	return false
}
