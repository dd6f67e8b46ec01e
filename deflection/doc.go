// Package deflection turns a scalar 3D deflection tolerance into the
// per-direction quantities the mesher works with.
//
// What:
//
//   - ComputeErrorFactors: U/V error-damping factors of a surface. Baseline
//     10·deflection; higher degree and more knots divide it further, so a
//     factor never grows with complexity.
//   - CurveErrorFactor: the same rule for a single curve.
//   - InitialCellsCounts / AdjustCellsCounts / CellsCount: sizing of the
//     spatial grid used for circumcircle queries.
//   - ArcAngularStep: parameter step along a circular arc that honours both
//     the linear and the angular deflection.
//
// Every function dispatches over the closed surface.Type set with one case
// per type. Unclassified surfaces (TypeOther) get explicit fallbacks, never
// undefined results: error factors (1, 1) and the cell count sentinel
// (NoHeuristic, NoHeuristic).
package deflection
