package main

import (
	"context"
	"os"

	"github.com/lintang-b-s/safewalk/pkg"
	"github.com/lintang-b-s/safewalk/pkg/datastructure"
	"github.com/lintang-b-s/safewalk/pkg/engine/routing"
	"github.com/lintang-b-s/safewalk/pkg/http"
	"github.com/lintang-b-s/safewalk/pkg/http/usecases"
	"github.com/lintang-b-s/safewalk/pkg/logger"
	"github.com/lintang-b-s/safewalk/pkg/osmparser"
	"github.com/lintang-b-s/safewalk/pkg/riskindex"
	"github.com/lintang-b-s/safewalk/pkg/spatialindex"
	"github.com/lintang-b-s/safewalk/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		log.Warn("no config file found, using defaults", zap.Error(err))
	}
	viper.SetDefault("OSM_FILE", "./data/map.osm.pbf")
	viper.SetDefault("GRAPH_FILE", "./data/pedestrian.graph")
	viper.SetDefault("HEX_RESOLUTION", pkg.DEFAULT_HEX_RESOLUTION)
	viper.SetDefault("BASELINE_RISK", pkg.DEFAULT_BASELINE_RISK)
	viper.SetDefault("ALPHA_DEFAULT", pkg.DEFAULT_ALPHA)

	graph := loadGraph(log)

	// partial or inconsistent map data must never be served
	if graph.NumberOfNodes() == 0 || graph.NumberOfEdges() == 0 {
		log.Fatal("no routable pedestrian data, refusing to start")
	}

	extent := graph.Extent()
	loLat, loLon, hiLat, hiLon := extent.Bounds()
	log.Info("graph built",
		zap.Int("nodes", graph.NumberOfNodes()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Float64("min_lat", loLat), zap.Float64("min_lon", loLon),
		zap.Float64("max_lat", hiLat), zap.Float64("max_lon", hiLon))

	resolution := viper.GetInt("HEX_RESOLUTION")
	baseline := viper.GetFloat64("BASELINE_RISK")

	riskIndex := riskindex.New(resolution, baseline, log)
	scorer := riskindex.NewSyntheticScorer(resolution, baseline, riskindex.DefaultHotspots(extent))
	riskIndex.PopulateFromGraph(graph, scorer)
	riskIndex.PrecomputeEdgeRisks(graph)

	rtree := spatialindex.NewRtree()
	rtree.Build(graph, log)

	astar := routing.NewAStar(graph, log)
	routingService := usecases.NewRoutingService(log, astar, rtree, viper.GetFloat64("ALPHA_DEFAULT"))

	api := http.NewServer(log)
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := api.Use(ctx, log, false, routingService); err != nil {
		log.Fatal("api server", zap.Error(err))
	}

	sig := http.GracefulShutdown()
	log.Info("SafeWalk routing server stopped", zap.String("signal", sig.String()))
	cancel()
}

// loadGraph prefers the serialized graph cache over re-parsing the pbf.
func loadGraph(log *zap.Logger) *datastructure.Graph {
	graphFile := viper.GetString("GRAPH_FILE")

	if _, err := os.Stat(graphFile); err == nil {
		graph, err := datastructure.ReadGraph(graphFile)
		if err != nil {
			log.Fatal("reading graph cache", zap.String("file", graphFile), zap.Error(err))
		}
		log.Info("graph cache loaded", zap.String("file", graphFile))
		return graph
	}

	parser := osmparser.NewOSMParser(log)
	graph, _, err := parser.Parse(viper.GetString("OSM_FILE"))
	if err != nil {
		log.Fatal("parsing openstreetmap data", zap.Error(err))
	}

	if err := graph.WriteGraph(graphFile); err != nil {
		log.Warn("writing graph cache", zap.String("file", graphFile), zap.Error(err))
	}
	return graph
}
