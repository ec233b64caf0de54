package service

import (
	"context"
	"errors"

	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// ResultadoCampo is one settlement line: what was measured, the tolerance it
// was judged against, the resolved percent and the resulting kg charge.
type ResultadoCampo struct {
	Campo       model.Campo     `json:"campo"`
	Medido      decimal.Decimal `json:"medido"`
	Tolerancia  decimal.Decimal `json:"tolerancia"`
	Porcentaje  decimal.Decimal `json:"porcentaje"`
	DescuentoKg decimal.Decimal `json:"descuento_kg"`
}

// ResultadoLiquidacion is the full outcome of settling one reception.
// All weights in kg; DescuentoTotal and Bonificacion are non-negative
// magnitudes and PaddyNeto = PesoNeto - DescuentoTotal + Bonificacion.
type ResultadoLiquidacion struct {
	Detalle        []ResultadoCampo `json:"detalle"`
	SecadoKg       decimal.Decimal  `json:"secado_kg"`
	DescuentoTotal decimal.Decimal  `json:"descuento_total"`
	Bonificacion   decimal.Decimal  `json:"bonificacion"`
	PaddyNeto      decimal.Decimal  `json:"paddy_neto"`
}

// LiquidacionService derives settlement totals from a reception's grain
// analysis and a plantilla. It reads the discount tables through the
// resolver and never mutates its inputs; persistence is the caller's job.
type LiquidacionService interface {
	Calcular(ctx context.Context, rec *model.Recepcion, plantilla *model.Plantilla) (*ResultadoLiquidacion, error)
}

type liquidacionService struct {
	descuentos DescuentoService
}

func NewLiquidacionService(descuentos DescuentoService) LiquidacionService {
	return &liquidacionService{descuentos: descuentos}
}

// Calcular walks the fixed analysis field set and accumulates weight-based
// discount contributions.
//
// Per-field rule: unavailable fields are skipped; a measurement at or below
// its tolerance contributes nothing; anything above resolves a percent from
// the discount table and charges pesoNeto × percent / 100 kg.
//
// Group rule (usaToleranciaGrupo): fields flagged toleranciaGrupo pool their
// individual excesses (max(medido − tolerancia, 0)); if the summed excess
// stays within the plantilla's toleranciaGrupo ceiling the whole group is
// free, otherwise every grouped field with a positive excess is charged
// through the resolver on its full measured value. Ungrouped fields keep the
// per-field rule.
//
// Any resolver miss aborts the whole calculation; partial totals are never
// returned.
func (s *liquidacionService) Calcular(ctx context.Context, rec *model.Recepcion, plantilla *model.Plantilla) (*ResultadoLiquidacion, error) {
	if plantilla == nil {
		return nil, errors.New("liquidacion requiere una plantilla")
	}

	res := &ResultadoLiquidacion{
		SecadoKg:       decimal.Zero,
		DescuentoTotal: decimal.Zero,
		Bonificacion:   decimal.Zero,
	}

	type campoMedido struct {
		campo  model.Campo
		codigo int
		param  model.ParametroCampo
		medido decimal.Decimal
		tol    decimal.Decimal
		exceso decimal.Decimal
	}

	var individuales, agrupados []campoMedido

	for _, campo := range model.Campos() {
		param, ok := plantilla.Parametro(campo)
		if !ok || !param.Disponible {
			continue
		}
		med, _ := rec.Medicion(campo)
		if param.Tolerancia == nil {
			if med.Porcentaje.IsPositive() {
				return nil, &ErrPlantillaIncompleta{Campo: campo}
			}
			continue
		}
		codigo, ok := model.CodigoCategoria(campo)
		if !ok {
			return nil, &ErrPlantillaIncompleta{Campo: campo}
		}

		cm := campoMedido{
			campo:  campo,
			codigo: codigo,
			param:  param,
			medido: med.Porcentaje,
			tol:    *param.Tolerancia,
		}
		cm.exceso = decimal.Max(cm.medido.Sub(cm.tol), decimal.Zero)

		if plantilla.UsaToleranciaGrupo && param.ToleranciaGrupo {
			agrupados = append(agrupados, cm)
		} else {
			individuales = append(individuales, cm)
		}
	}

	cargar := func(cm campoMedido) error {
		pct, err := s.descuentos.Resolver(ctx, cm.codigo, cm.medido)
		if err != nil {
			var sinRango *ErrSinRangoDescuento
			if errors.As(err, &sinRango) {
				return &ErrDescuentoNoConfigurado{Campo: cm.campo, Valor: cm.medido, Causa: err}
			}
			return err
		}
		kg := rec.PesoNeto.Mul(pct.Abs()).Div(cien)
		res.Detalle = append(res.Detalle, ResultadoCampo{
			Campo:       cm.campo,
			Medido:      cm.medido,
			Tolerancia:  cm.tol,
			Porcentaje:  pct,
			DescuentoKg: kg,
		})
		res.DescuentoTotal = res.DescuentoTotal.Add(kg)
		return nil
	}

	for _, cm := range individuales {
		if !cm.exceso.IsPositive() {
			continue
		}
		if err := cargar(cm); err != nil {
			return nil, err
		}
	}

	if len(agrupados) > 0 {
		excesoGrupo := decimal.Zero
		for _, cm := range agrupados {
			excesoGrupo = excesoGrupo.Add(cm.exceso)
		}
		if excesoGrupo.GreaterThan(plantilla.ToleranciaGrupo) {
			for _, cm := range agrupados {
				if !cm.exceso.IsPositive() {
					continue
				}
				if err := cargar(cm); err != nil {
					return nil, err
				}
			}
		}
	}

	// Secado: flat drying charge, percent of net weight, no tolerance.
	if plantilla.SecadoDisponible && plantilla.SecadoPorcentaje.IsPositive() {
		res.SecadoKg = rec.PesoNeto.Mul(plantilla.SecadoPorcentaje).Div(cien)
		res.DescuentoTotal = res.DescuentoTotal.Add(res.SecadoKg)
	}

	// Bonificación: humidity at or below the bonus tolerance earns the
	// headroom back as extra paddy weight.
	if plantilla.BonificacionDisponible && rec.Humedad.Porcentaje.IsPositive() {
		headroom := plantilla.BonificacionTolerancia.Sub(rec.Humedad.Porcentaje)
		if headroom.IsPositive() {
			res.Bonificacion = rec.PesoNeto.Mul(headroom).Div(cien)
		}
	}

	res.DescuentoTotal = res.DescuentoTotal.Round(2)
	res.Bonificacion = res.Bonificacion.Round(2)
	res.PaddyNeto = rec.PesoNeto.Sub(res.DescuentoTotal).Add(res.Bonificacion)

	return res, nil
}
