package graphreader

import (
	"context"
	"fmt"
	"strings"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/encoding"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/featuresource"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/util"
	"go.uber.org/zap"
)

// resolveRestrictions. third pass: features with a restriction attribute are turned into turn
// relations between the way of the feature and the way in restriction_to.
func (r *Reader) resolveRestrictions(ctx context.Context) error {
	if len(r.wayEndpoints) == 0 {
		r.logger.Info("way endpoint table is empty, no turn restrictions to resolve")
		return nil
	}

	return r.scan(ctx, "resolve restrictions", func(f featuresource.Feature) error {
		val, ok := f.GetAttribute("restriction")
		if !ok {
			return nil
		}
		restriction := strings.TrimSpace(fmt.Sprint(val))
		if restriction == "" {
			return nil
		}

		kind := datastructure.GetRestrictionType(restriction)
		if kind == datastructure.UNSUPPORTED {
			r.logger.Info("unsupported turn restriction", zap.String("restriction", restriction))
			r.stats.restrictionsUnsupported.Inc()
			return nil
		}

		fromWayID, err := f.GetID()
		if err != nil {
			r.logger.Warn("skipping restriction without way id", zap.Error(err))
			return nil
		}
		rawTo, _ := f.GetAttribute("restriction_to")
		toWayID, err := util.ToInt64(rawTo)
		if err != nil {
			r.logger.Debug("skipping restriction without target way",
				zap.Int64("from_way", fromWayID), zap.Error(err))
			return nil
		}
		if fromWayID <= 0 || toWayID <= 0 {
			return nil
		}

		fromWay, okFrom := r.wayEndpoints[fromWayID]
		toWay, okTo := r.wayEndpoints[toWayID]
		if !okFrom || !okTo {
			r.stats.restrictionsMissingWay.Inc()
			return nil
		}

		via, ok := viaNode(fromWay, toWay)
		if !ok {
			r.stats.restrictionsUnresolved.Inc()
			return nil
		}

		rel := datastructure.NewTurnRelation(fromWayID, via, toWayID, kind)
		rel.VehicleTypeRestricted = encoding.VEHICLE_TYPE
		r.logger.Info("turn restriction", zap.Stringer("relation", rel))

		if err := r.encoder.HandleTurnRelation(rel); err != nil {
			return fmt.Errorf("apply turn restriction %s: %w", rel, err)
		}
		r.stats.restrictionsApplied.Inc()
		return nil
	})
}

// viaNode returns the node shared by the two ways, checked in this order:
// from.to == to.from, from.to == to.to, from.from == to.from, from.from == to.to.
func viaNode(from, to *wayEndpoints) (datastructure.Index, bool) {
	switch {
	case from.to == to.from:
		return from.to, true
	case from.to == to.to:
		return from.to, true
	case from.from == to.from:
		return from.from, true
	case from.from == to.to:
		return from.from, true
	default:
		return 0, false
	}
}
